// Package enrich fills company rows with researched firmographic data. A
// batch fetches concurrently, then persists serially so a provider failure
// never leaves a half-written batch behind.
package enrich

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/normalize"
	"github.com/sells-group/leadgen-cli/internal/store"
)

// Repository is the slice of the store the batch needs.
type Repository interface {
	PendingEnrichment(ctx context.Context, limit int) ([]model.PendingCompany, error)
	ApplyEnrichment(ctx context.Context, companyID int64, upd store.EnrichmentUpdate) error
}

// Stats reports one batch run.
type Stats struct {
	Pending  int
	Enriched int
}

// Batch researches up to limit pending companies with at most concurrency
// in-flight provider calls. All fetches must succeed before anything is
// written; persistence then runs on a single writer.
func Batch(ctx context.Context, repo Repository, provider Provider, limit, concurrency int) (Stats, error) {
	var stats Stats

	pending, err := repo.PendingEnrichment(ctx, limit)
	if err != nil {
		return stats, eris.Wrap(err, "enrich: load pending companies")
	}
	stats.Pending = len(pending)
	if len(pending) == 0 {
		zap.L().Info("no companies pending enrichment")
		return stats, nil
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*model.CompanyEnrichment, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, company := range pending {
		g.Go(func() error {
			payload, err := provider.Research(gctx, company.Name, company.Domain)
			if err != nil {
				return eris.Wrapf(err, "enrich: research %s", company.Name)
			}
			if payload == nil {
				return eris.Errorf("enrich: research %s: no payload", company.Name)
			}
			results[i] = payload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for i, company := range pending {
		upd := buildUpdate(company, results[i])
		if err := repo.ApplyEnrichment(ctx, company.ID, upd); err != nil {
			return stats, err
		}
		stats.Enriched++
		zap.L().Info("company enriched",
			zap.Int64("company_id", company.ID),
			zap.String("name", company.Name),
			zap.String("legal_form", upd.LegalForm))
	}
	return stats, nil
}

// buildUpdate maps a provider payload onto store columns. The company's
// existing domain always wins; only domainless rows pick up the apex of the
// researched website.
func buildUpdate(company model.PendingCompany, payload *model.CompanyEnrichment) store.EnrichmentUpdate {
	upd := store.EnrichmentUpdate{
		LegalForm:     DeriveLegalForm(company.Name, payload.LegalForm),
		Website:       strings.TrimSpace(payload.Website),
		Industries:    payload.Industries,
		LocationsDE:   payload.LocationsDE,
		Multinational: payload.Multinational,
		SizeEmployees: payload.SizeEmployees,
		BusinessModel: payload.BusinessModel,
		Products:      payload.Products,
		RecentNews:    payload.RecentNews,
	}
	if company.Domain == "" && upd.Website != "" {
		upd.Domain = normalize.ApexDomain(upd.Website)
	}
	return upd
}
