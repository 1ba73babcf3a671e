package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/app/template"
	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// Build descriptors and the files their configure step leaves behind.
const (
	MakefilePL = "Makefile.PL"
	Makefile   = "Makefile"
	BuildPL    = "Build.PL"
	Build      = "Build"
)

// ResolveMetadata works out the project's name, description and homepage.
type ResolveMetadata struct {
	root   string
	cfg    domain.Config
	reader ports.MetadataReader
	runner ports.ProcessRunner
	log    *slog.Logger
}

type ResolveMetadataOption func(*ResolveMetadata)

func WithMetadataLogger(l *slog.Logger) ResolveMetadataOption {
	return func(uc *ResolveMetadata) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewResolveMetadata(root string, cfg domain.Config, reader ports.MetadataReader, runner ports.ProcessRunner, opts ...ResolveMetadataOption) *ResolveMetadata {
	uc := &ResolveMetadata{
		root:   root,
		cfg:    cfg,
		reader: reader,
		runner: runner,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute resolves metadata. Explicit values win; the metadata file is only read
// (and generated if needed) when one of them is missing.
func (uc *ResolveMetadata) Execute(ctx context.Context, name, desc string) (domain.ProjectMetadata, error) {
	meta := domain.ProjectMetadata{Name: name, Description: desc}

	if name == "" || desc == "" {
		doc, err := uc.document(ctx)
		if err != nil {
			return domain.ProjectMetadata{}, err
		}
		if meta.Name == "" {
			meta.Name = strings.TrimSpace(doc.Name)
		}
		if meta.Description == "" {
			meta.Description = uc.cfg.LanguageTag + doc.Abstract
		}
	}

	if meta.Name == "" {
		return domain.ProjectMetadata{}, domain.Fail(domain.StageMetadataMissing, "project name is empty", nil)
	}

	home, err := template.Homepage(uc.cfg.HomepageTemplate, meta.Name)
	if err != nil {
		return domain.ProjectMetadata{}, domain.Fail(domain.StageMetadataMissing, "cannot render homepage URL", err)
	}
	meta.HomepageURL = home

	uc.log.Info("metadata.resolved",
		slog.String("name", meta.Name),
		slog.String("homepage", meta.HomepageURL),
	)
	return meta, nil
}

func (uc *ResolveMetadata) document(ctx context.Context) (domain.MetaDocument, error) {
	path, err := uc.reader.Find(uc.root)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return domain.MetaDocument{}, domain.Fail(domain.StageMetadataMissing, "cannot look for a metadata file", err)
		}

		generated, genErr := uc.generate(ctx)
		if genErr != nil {
			return domain.MetaDocument{}, genErr
		}
		if !generated {
			return domain.MetaDocument{}, domain.Fail(domain.StageMetadataMissing, "no META.yml and no Makefile.PL or Build.PL to generate one", err)
		}

		path, err = uc.reader.FindGenerated(uc.root)
		if err != nil {
			return domain.MetaDocument{}, domain.Fail(domain.StageMetadataMissing, "build tool did not produce META.yml", err)
		}
	}

	doc, err := uc.reader.Read(path)
	if err != nil {
		return domain.MetaDocument{}, domain.Fail(domain.StageMetadataMissing, "cannot read "+path, err)
	}
	return doc, nil
}

// generate runs one build strategy. It reports false when the project has
// no build descriptor at all.
func (uc *ResolveMetadata) generate(ctx context.Context) (bool, error) {
	switch {
	case uc.exists(MakefilePL):
		uc.log.Info("metadata.generate", slog.String("strategy", MakefilePL))
		if !uc.exists(Makefile) {
			if err := uc.run(ctx, "perl", MakefilePL); err != nil {
				return true, err
			}
		}
		if uc.exists(Makefile) {
			if err := uc.run(ctx, "make", "metafile"); err != nil {
				return true, err
			}
		}
		return true, nil

	case uc.exists(BuildPL):
		uc.log.Info("metadata.generate", slog.String("strategy", BuildPL))
		if !uc.exists(Build) {
			if err := uc.run(ctx, "perl", BuildPL); err != nil {
				return true, err
			}
		}
		if uc.exists(Build) {
			if err := uc.run(ctx, "./"+Build, "distmeta"); err != nil {
				return true, err
			}
		}
		return true, nil
	}
	return false, nil
}

func (uc *ResolveMetadata) run(ctx context.Context, name string, args ...string) error {
	cmd := domain.Command{Dir: uc.root, Name: name, Args: args}

	res, err := uc.runner.Run(ctx, cmd)
	if err != nil {
		return domain.Fail(domain.StageMetadataMissing, fmt.Sprintf("cannot run %q", cmd.String()), err)
	}
	if !res.OK() {
		var cause error
		if line := lastLine(res.Output); line != "" {
			cause = errors.New(line)
		}
		return domain.Fail(domain.StageMetadataMissing,
			fmt.Sprintf("%q exited with status %d", cmd.String(), res.ExitCode), cause)
	}
	return nil
}

func (uc *ResolveMetadata) exists(name string) bool {
	_, err := os.Stat(filepath.Join(uc.root, name))
	return err == nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
