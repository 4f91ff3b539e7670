package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

// LintTarget is one document to lint.
type LintTarget struct {
	Host    domain.Host
	Name    string
	Path    string
	Storage domain.ClientStorage
	// ShowIgnored keeps diagnostics the ignored-errors set would hide.
	ShowIgnored bool
}

// LintService runs a full lint pass over a document's current selection and
// builds a report.
type LintService struct {
	cfg       domain.Config
	revisions domain.RevisionReader
	log       *zap.SugaredLogger
}

func NewLintService(cfg domain.Config, revisions domain.RevisionReader) *LintService {
	return &LintService{cfg: cfg, revisions: revisions, log: logger.For(logger.ComponentController)}
}

// Run drives a controller through run-app and folds its responses into a
// report. An empty selection yields domain.ErrEmptySelection.
func (s *LintService) Run(ctx context.Context, target LintTarget) (domain.Report, error) {
	out := &Collector{}
	ctrl := NewController(target.Host, target.Storage, out, s.cfg, WithLogger(s.log.With("document", target.Name)))

	if err := ctrl.Handle(ctx, domain.Command{Type: domain.CommandRunApp}); err != nil {
		return domain.Report{}, err
	}
	ctrl.Wait()

	complete, ok := out.Last(domain.ResponseComplete)
	if !ok {
		return domain.Report{}, fmt.Errorf("%s: %w", target.Name, domain.ErrEmptySelection)
	}
	if failed, ok := out.Last(domain.ResponseError); ok {
		return domain.Report{}, errors.New(failed.Error)
	}

	report := domain.Report{
		Document: target.Name,
		Path:     target.Path,
		Tree:     complete.Tree,
		Records:  complete.Errors,
	}
	if report.Records == nil {
		report.Records = []domain.FlatRecord{}
	}
	s.annotateRevision(&report)

	if target.ShowIgnored {
		return report, nil
	}
	stored, _ := out.Last(domain.ResponseFetchedStorage)
	ignored := domain.IgnoreSet{}
	if stored.Storage != nil {
		var err error
		if ignored, err = domain.ParseIgnoreSet(*stored.Storage); err != nil {
			return domain.Report{}, err
		}
	}
	return report.WithoutIgnored(ignored), nil
}

func (s *LintService) annotateRevision(report *domain.Report) {
	if s.revisions == nil || report.Path == "" || !s.revisions.IsGitRepo(report.Path) {
		return
	}
	hash, err := s.revisions.CommitHash(report.Path)
	if err != nil {
		s.log.Debugw("No revision for document", "path", report.Path, "error", err)
		return
	}
	report.Revision = hash
	if modified, err := s.revisions.Modified(report.Path); err == nil {
		report.Modified = modified
	}
}
