package v1

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/app/store"
	"github.com/knowscan-ai/knowscan/pkg/ai"
	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/safe"
	"github.com/knowscan-ai/knowscan/pkg/types"
	"github.com/knowscan-ai/knowscan/pkg/utils"
)

type ScanLogic struct {
	ctx  context.Context
	core *core.Core

	records store.ScanRecordStore
	scans   store.KnowledgeScanStore
	driver  ai.ChatAI
	biblio  *BibliographyLogic
	cfg     core.ScanConfig
}

func NewScanLogic(ctx context.Context, c *core.Core) *ScanLogic {
	return &ScanLogic{
		ctx:     ctx,
		core:    c,
		records: c.Store().ScanRecordStore(),
		scans:   c.Store().KnowledgeScanStore(),
		driver:  c.Srv().AI(),
		biblio:  NewBibliographyLogic(ctx, c),
		cfg:     c.Cfg().Scan,
	}
}

// bareYearRange matches terms like "2010-2015" or "2020" which the keyword
// list excludes.
var bareYearRange = regexp.MustCompile(`^\d{4}(\s*[-–]\s*\d{4})?$`)

// GenerateKnowledgeScan groups the requested records by source document,
// condenses each group into one combined summary, synthesizes the overall
// cross-document narrative, and persists the result. Any completion failure
// aborts the request; no partial scan is stored.
func (l *ScanLogic) GenerateKnowledgeScan(query string, docIDs []string) (*types.KnowledgeScan, error) {
	if query == "" || len(docIDs) == 0 {
		return nil, invalidInput("ScanLogic.GenerateKnowledgeScan", "both query and documents are required")
	}

	groups, err := groupRecords(l.ctx, l.records, docIDs)
	if err != nil {
		return nil, pkgerrors.Trace("ScanLogic.groupRecords", err)
	}

	combined, err := l.combineGroups(query, groups)
	if err != nil {
		return nil, err
	}

	var metrics *core.Metrics
	if l.core != nil {
		metrics = l.core.Metrics()
	}

	// Join point: the overall narrative needs every combined summary, in
	// group order, because the bracketed markers are positional.
	overallPrompt := ai.OverallSummaryPrompt(lo.Map(combined, func(s types.CombinedSummary, _ int) string {
		return s.Summary
	}))
	overall, err := callModel(l.ctx, metrics, l.driver, "overall_summary", overallPrompt, ai.PROMPT_SYSTEM_OVERALL_SUMMARY)
	if err != nil {
		return nil, pkgerrors.New("ScanLogic.overallSummary", "overall summary generation failed", err)
	}

	keywordReply, err := callModel(l.ctx, metrics, l.driver, "keywords", ai.KeywordsPrompt(overall), ai.PROMPT_SYSTEM_KEYWORDS)
	if err != nil {
		return nil, pkgerrors.New("ScanLogic.keywords", "keyword extraction failed", err)
	}

	scan := types.KnowledgeScan{
		ID:                utils.GenSpecID(),
		Query:             query,
		CombinedSummaries: combined,
		OverallSummary:    overall,
		GeneralNotes:      fmt.Sprintf("Generated based on query: %s. This scan covers documents from various sources and provides a summarized overview.", query),
		Keywords:          pq.StringArray(mergeKeywords(keywordReply, groups)),
		ResourcesSearched: pq.StringArray(mergeResources(groups)),
	}

	if err = l.scans.Create(l.ctx, scan); err != nil {
		return nil, pkgerrors.New("ScanLogic.Create", "failed to persist knowledge scan", err)
	}

	slog.Info("knowledge scan created",
		slog.String("scan_id", scan.ID),
		slog.Int("documents", len(groups)),
	)
	return &scan, nil
}

func (l *ScanLogic) GetScan(id string) (*types.KnowledgeScan, error) {
	scan, err := l.scans.GetScan(l.ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkgerrors.New("ScanLogic.GetScan", "knowledge scan not found", err).Code(http.StatusNotFound)
		}
		return nil, pkgerrors.New("ScanLogic.GetScan", "failed to fetch knowledge scan", err)
	}
	return scan, nil
}

// combineGroups runs the per-document combined-summary call and the
// bibliography lookup for every group with bounded concurrency. Summaries
// are fatal on failure; bibliographies degrade to their sentinel.
func (l *ScanLogic) combineGroups(query string, groups []recordGroup) ([]types.CombinedSummary, error) {
	var metrics *core.Metrics
	if l.core != nil {
		metrics = l.core.Metrics()
	}

	combined := make([]types.CombinedSummary, len(groups))
	errs := make([]error, len(groups))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, l.cfg.AggregateConcurrency)

	for i, group := range groups {
		wg.Add(1)
		go func(i int, group recordGroup) {
			defer wg.Done()
			// Pre-seeded so a recovered panic inside the closure still
			// counts as a failed group; cleared only on full success.
			errs[i] = fmt.Errorf("combined summary did not complete for %s", group.BaseName)
			safe.Run(func() {
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				summaries := lo.Map(group.Records, func(r *types.ScanRecord, _ int) string {
					return r.Summary
				})
				prompt := ai.CombinedSummaryPrompt(query, summaries)
				summary, err := callModel(l.ctx, metrics, l.driver, "combined_summary", prompt, ai.PROMPT_SYSTEM_COMBINED_SUMMARY)
				if err != nil {
					errs[i] = fmt.Errorf("combined summary failed for %s: %w", group.BaseName, err)
					return
				}

				combined[i] = types.CombinedSummary{
					FileName:     group.BaseName,
					Summary:      summary,
					Bibliography: l.biblio.Resolve(group.BaseName),
				}
				errs[i] = nil
			})
		}(i, group)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, pkgerrors.New("ScanLogic.combineGroups", "per-document summarization failed", err)
		}
	}
	return combined, nil
}

// mergeKeywords unions the extracted keyword list with any keyword metadata
// carried on the records, dropping bare year ranges, and serializes sorted
// so the same input always yields the same list.
func mergeKeywords(extracted string, groups []recordGroup) []string {
	seen := make(map[string]struct{})

	add := func(term string) {
		term = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(term), "."))
		if term == "" || bareYearRange.MatchString(term) {
			return
		}
		seen[term] = struct{}{}
	}

	for _, term := range strings.Split(extracted, ",") {
		add(term)
	}
	for _, group := range groups {
		for _, record := range group.Records {
			for _, term := range record.Keywords {
				add(term)
			}
		}
	}

	keywords := lo.Keys(seen)
	sort.Strings(keywords)
	return keywords
}

func mergeResources(groups []recordGroup) []string {
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, record := range group.Records {
			if resource := strings.TrimSpace(record.Resource); resource != "" {
				seen[resource] = struct{}{}
			}
		}
	}

	resources := lo.Keys(seen)
	sort.Strings(resources)
	return resources
}
