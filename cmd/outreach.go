package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
)

const outreachTimeLayout = "2006-01-02 15:04:05"

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Manage scheduled outreach messages",
}

var outreachScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule an outreach message for a person",
	RunE:  runOutreachSchedule,
}

var outreachDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List messages due for sending",
	RunE:  runOutreachDue,
}

var outreachSentCmd = &cobra.Command{
	Use:   "sent [id]",
	Short: "Mark a message as sent",
	Args:  cobra.ExactArgs(1),
	RunE:  markOutreach("sent"),
}

var outreachRepliedCmd = &cobra.Command{
	Use:   "replied [id]",
	Short: "Mark a message as replied",
	Args:  cobra.ExactArgs(1),
	RunE:  markOutreach("replied"),
}

func init() {
	f := outreachScheduleCmd.Flags()
	f.String("profile", "", "LinkedIn profile URL (required)")
	f.String("channel", "linkedin", "channel: linkedin or email")
	f.Int("stage", 1, "sequence stage number")
	f.String("message", "", "rendered message body (required)")
	f.String("at", "", "schedule time, \"2006-01-02 15:04:05\" (default now)")
	outreachScheduleCmd.MarkFlagRequired("profile")
	outreachScheduleCmd.MarkFlagRequired("message")

	outreachCmd.AddCommand(outreachScheduleCmd, outreachDueCmd, outreachSentCmd, outreachRepliedCmd)
	rootCmd.AddCommand(outreachCmd)
}

func runOutreachSchedule(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("store"); err != nil {
		return err
	}

	profile, _ := cmd.Flags().GetString("profile")
	channel, _ := cmd.Flags().GetString("channel")
	stage, _ := cmd.Flags().GetInt("stage")
	message, _ := cmd.Flags().GetString("message")
	at, _ := cmd.Flags().GetString("at")

	canonical := normalize.ProfileURL(profile)
	if canonical == "" {
		return eris.Errorf("outreach: not a profile URL: %s", profile)
	}
	if at == "" {
		at = time.Now().UTC().Format(outreachTimeLayout)
	} else if _, err := time.Parse(outreachTimeLayout, at); err != nil {
		return eris.Wrap(err, "outreach: parse --at")
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.ScheduleOutreach(ctx, &model.OutreachMessage{
		LinkedInProfile: canonical,
		Channel:         channel,
		StageNo:         stage,
		RenderedMD:      message,
		Status:          model.OutreachStatusScheduled,
		ScheduledAt:     at,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled message %d for %s at %s.\n", id, canonical, at)
	return nil
}

func runOutreachDue(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := cfg.Validate("store"); err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	messages, err := st.DueOutreach(ctx, time.Now())
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Println("No messages due.")
		return nil
	}
	for _, m := range messages {
		fmt.Printf("%6d  %-8s stage %d  %s  %s\n", m.ID, m.Channel, m.StageNo, m.ScheduledAt, m.LinkedInProfile)
	}
	return nil
}

func markOutreach(status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("store"); err != nil {
			return err
		}

		var id int64
		if _, err := fmt.Sscan(args[0], &id); err != nil {
			return eris.Errorf("outreach: not a message id: %s", args[0])
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if status == "sent" {
			err = st.MarkOutreachSent(ctx, id)
		} else {
			err = st.MarkOutreachReplied(ctx, id)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Message %d marked %s.\n", id, status)
		return nil
	}
}
