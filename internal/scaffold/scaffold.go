package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/manifest"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const templatesDir = "scaffolds/pipeline"

// Data holds the template variables available to scaffold templates.
type Data struct {
	Name        string
	Version     string
	Description string
}

// NewData returns template data for a pipeline at the given tool version.
func NewData(version string) *Data {
	if version == "" || version == "dev" {
		version = "0.0.0"
	}
	return &Data{
		Name:        branding.CLIName() + "-pipeline",
		Version:     strings.TrimPrefix(version, "v"),
		Description: branding.DisplayName() + " build pipeline",
	}
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Generate writes the pipeline project into outputDir. A non-empty
// outputDir is refused unless force is set, in which case files with the
// same names are overwritten and everything else is left alone.
func Generate(data *Data, outputDir string, force bool) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 && !force {
		return nil, fmt.Errorf("output directory %s is not empty; pass --force to overwrite", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	err = fs.WalkDir(scaffoldFS, templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimPrefix(p, templatesDir+"/")
		content, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		outRel := rel
		if strings.HasSuffix(rel, ".tmpl") {
			outRel = strings.TrimSuffix(rel, ".tmpl")
			content, err = render(path.Base(p), content, data)
			if err != nil {
				return err
			}
		}

		outPath := filepath.Join(outputDir, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	manifestFile := filepath.Join(outputDir, manifest.FileName)
	valResult, valErr := manifest.ValidateFile(manifestFile)
	switch {
	case valErr != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate manifest: %v", valErr))
	case !valResult.Valid:
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}

func render(name string, content []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
