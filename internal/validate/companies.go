package validate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
)

// CompanyOK reports whether a draft carries at least one identifying field.
func CompanyOK(c model.CompanyDraft) bool {
	return c.Name != "" || c.Domain != "" || c.Website != ""
}

// CleanCompany trims fields and derives the apex domain from the website
// when the draft has none.
func CleanCompany(c model.CompanyDraft) model.CompanyDraft {
	c.Name = strings.TrimSpace(c.Name)
	c.Website = strings.TrimSpace(c.Website)
	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
	c.Address = strings.TrimSpace(c.Address)
	if c.Domain == "" && c.Website != "" {
		c.Domain = normalize.ApexDomain(c.Website)
	}
	return c
}

// Companies validates and cleans a batch of company drafts.
func Companies(drafts []model.CompanyDraft) []model.CompanyDraft {
	valid := make([]model.CompanyDraft, 0, len(drafts))
	for _, c := range drafts {
		if !CompanyOK(c) {
			continue
		}
		valid = append(valid, CleanCompany(c))
	}
	return valid
}

// DedupeCompanies merges drafts that identify the same company. The domain
// is the authoritative key; drafts without one fall back to name+address.
// A domainless, addressless draft whose name collides with a domain-keyed
// draft cannot be resolved either way and lands on the review list instead
// of being merged.
func DedupeCompanies(drafts []model.CompanyDraft) (unique, review []model.CompanyDraft) {
	byDomain := make(map[string]int)
	byNameAddr := make(map[string]int)
	domainNames := make(map[string]struct{})

	for _, d := range drafts {
		domain := strings.ToLower(strings.TrimSpace(d.Domain))
		name := strings.ToLower(strings.TrimSpace(d.Name))

		if domain != "" {
			if idx, ok := byDomain[domain]; ok {
				unique[idx] = mergeCompanyDrafts(unique[idx], d)
				continue
			}
			unique = append(unique, d)
			byDomain[domain] = len(unique) - 1
			if name != "" {
				domainNames[name] = struct{}{}
			}
			continue
		}

		addr := strings.ToLower(strings.TrimSpace(d.Address))
		key := name + "|" + addr
		if idx, ok := byNameAddr[key]; ok {
			unique[idx] = mergeCompanyDrafts(unique[idx], d)
			continue
		}
		if _, clash := domainNames[name]; clash && addr == "" {
			zap.L().Warn("ambiguous company match needs review", zap.String("name", d.Name))
			review = append(review, d)
			continue
		}
		unique = append(unique, d)
		byNameAddr[key] = len(unique) - 1
	}

	if merged := len(drafts) - len(unique) - len(review); merged > 0 {
		zap.L().Info("merged duplicate companies", zap.Int("merged", merged))
	}
	return unique, review
}

// mergeCompanyDrafts fills empty fields of the kept draft from the
// duplicate. Existing values always win.
func mergeCompanyDrafts(kept, dup model.CompanyDraft) model.CompanyDraft {
	if kept.Name == "" {
		kept.Name = dup.Name
	}
	if kept.Domain == "" {
		kept.Domain = dup.Domain
	}
	if kept.Website == "" {
		kept.Website = dup.Website
	}
	if kept.Address == "" {
		kept.Address = dup.Address
	}
	if kept.Phone == "" {
		kept.Phone = dup.Phone
	}
	if kept.SourceName == "" {
		kept.SourceName = dup.SourceName
	}
	if kept.SourceQuery == "" {
		kept.SourceQuery = dup.SourceQuery
	}
	return kept
}
