package v1

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/knowscan-ai/knowscan/app/core"
	"github.com/knowscan-ai/knowscan/app/store"
	"github.com/knowscan-ai/knowscan/pkg/ai"
	"github.com/knowscan-ai/knowscan/pkg/chunk"
	pkgerrors "github.com/knowscan-ai/knowscan/pkg/errors"
	"github.com/knowscan-ai/knowscan/pkg/types"
)

type BibliographyLogic struct {
	ctx  context.Context
	core *core.Core

	records store.ScanRecordStore
	driver  ai.ChatAI
	cfg     core.ScanConfig
}

func NewBibliographyLogic(ctx context.Context, c *core.Core) *BibliographyLogic {
	return &BibliographyLogic{
		ctx:     ctx,
		core:    c,
		records: c.Store().ScanRecordStore(),
		driver:  c.Srv().AI(),
		cfg:     c.Cfg().Scan,
	}
}

type BibliographyResult struct {
	FileName     string `json:"file_name"`
	Bibliography string `json:"bibliography"`
}

// GenerateBibliographies resolves a citation for each distinct source
// document among the given records.
func (l *BibliographyLogic) GenerateBibliographies(docIDs []string) ([]BibliographyResult, error) {
	if len(docIDs) == 0 {
		return nil, invalidInput("BibliographyLogic.GenerateBibliographies", "documents are required")
	}

	groups, err := groupRecords(l.ctx, l.records, docIDs)
	if err != nil {
		return nil, pkgerrors.Trace("BibliographyLogic.groupRecords", err)
	}

	results := make([]BibliographyResult, 0, len(groups))
	for _, group := range groups {
		results = append(results, BibliographyResult{
			FileName:     group.BaseName,
			Bibliography: l.Resolve(group.BaseName),
		})
	}
	return results, nil
}

// Resolve derives a formatted citation from the opening pages of the named
// document. Citation data lives on the title page, so only the first chunk
// is consulted; any miss or model failure degrades to the sentinel rather
// than failing the caller.
func (l *BibliographyLogic) Resolve(baseName string) string {
	firstChunk := chunk.FirstChunkFileName(baseName, l.cfg.ChunkSize)
	record, err := l.records.GetByFileName(l.ctx, firstChunk)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("bibliography lookup failed",
				slog.String("file_name_chunk", firstChunk),
				slog.String("error", err.Error()),
			)
		}
		return types.NoBibliography
	}

	var metrics *core.Metrics
	if l.core != nil {
		metrics = l.core.Metrics()
	}

	prompt := ai.BibliographyPrompt(record.ContentText, l.cfg.BibliographyPrefixLen)
	reply, err := callModel(l.ctx, metrics, l.driver, "bibliography", prompt, ai.PROMPT_SYSTEM_BIBLIOGRAPHY)
	if err != nil {
		slog.Error("bibliography generation failed",
			slog.String("file_name", baseName),
			slog.String("error", err.Error()),
		)
		return types.NoBibliography
	}

	return ParseBibliography(reply).Format()
}

var yearParens = regexp.MustCompile(`\((\d{4}[a-z]?|n\.d\.)\)`)

// ParseBibliography splits a model reply of the form
// "Authors (Year). Title. Institution." into its components. Replies that
// do not carry a parenthesized year are kept whole as the title so the
// formatted output still round-trips.
func ParseBibliography(reply string) types.BibliographyEntry {
	reply = strings.TrimSpace(reply)
	if reply == "" || reply == types.NoBibliography {
		return types.BibliographyEntry{}
	}

	loc := yearParens.FindStringSubmatchIndex(reply)
	if loc == nil {
		return types.BibliographyEntry{Title: strings.TrimSuffix(reply, ".")}
	}

	entry := types.BibliographyEntry{
		PublicationDate: reply[loc[2]:loc[3]],
	}

	authors := strings.TrimSpace(reply[:loc[0]])
	for _, author := range strings.Split(authors, ",") {
		if author = strings.TrimSpace(author); author != "" {
			entry.Authors = append(entry.Authors, author)
		}
	}

	remainder := strings.TrimSpace(reply[loc[1]:])
	remainder = strings.TrimSpace(strings.TrimPrefix(remainder, "."))
	remainder = strings.TrimSuffix(remainder, ".")
	if remainder == "" {
		return entry
	}

	if title, institution, ok := strings.Cut(remainder, ". "); ok {
		entry.Title = strings.TrimSpace(title)
		entry.Institution = strings.TrimSpace(institution)
	} else {
		entry.Title = remainder
	}
	return entry
}
