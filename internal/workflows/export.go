package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/contacts"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
	"github.com/kestrel-crypto/kestrel/internal/utils"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// OutputPath is the file to write.
	// If empty, defaults to kestrel-keyring-YYYY-MM-DD.<format>.
	OutputPath string

	// Out receives the export instead of a file when set.
	Out io.Writer

	// Format is one of toml, yaml or json.
	// If empty, the format from the user config is used.
	Format string

	// IncludePrivate writes locked private key envelopes as well.
	IncludePrivate bool
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// OutputPath is the file written, or empty when writing to Out.
	OutputPath string

	Format        string
	ContactCount  int
	IdentityCount int

	// PrivateKeysIncluded is the number of private key envelopes written.
	PrivateKeysIncluded int
}

type exportDocument struct {
	Version  int                `toml:"version" yaml:"version" json:"version"`
	Exported time.Time          `toml:"exported_at" yaml:"exported_at" json:"exported_at"`
	Contacts []contacts.Contact `toml:"contact" yaml:"contacts" json:"contacts"`
}

// Export writes the keyring in the requested format. Private key envelopes
// are left out unless IncludePrivate is set. Files are written atomically
// with owner-only permissions.
//
// Returns ErrUnsupportedFormat for an unknown format.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return nil, err
		}
		format = strings.ToLower(userConfig.Export.Format)
	}

	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Format: format}
	exported := k.List()
	for i := range exported {
		if exported[i].IsIdentity() {
			result.IdentityCount++
			if opts.IncludePrivate {
				result.PrivateKeysIncluded++
				continue
			}
		}
		exported[i].PrivateKey = ""
	}
	result.ContactCount = len(exported)

	data, err := RenderExport(exported, format, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if opts.Out != nil {
		if _, err := opts.Out.Write(data); err != nil {
			return nil, fmt.Errorf("writing export: %w", err)
		}
	} else {
		outputPath := opts.OutputPath
		if outputPath == "" {
			outputPath = fmt.Sprintf("kestrel-keyring-%s.%s", time.Now().Format("2006-01-02"), format)
		}
		if err := utils.WriteFileAtomic(outputPath, data, 0600); err != nil {
			return nil, fmt.Errorf("writing export: %w", err)
		}
		result.OutputPath = outputPath
	}

	auditEntry := audit.LogWithUser("export")
	auditEntry.Format = format
	auditEntry.OutputPath = result.OutputPath
	auditEntry.IncludePrivate = opts.IncludePrivate
	audit.Log(auditEntry)

	return result, nil
}

// RenderExport encodes contacts as an export document in format.
func RenderExport(list []contacts.Contact, format string, exportedAt time.Time) ([]byte, error) {
	doc := exportDocument{
		Version:  configs.KeyringFileVersion,
		Exported: exportedAt,
		Contacts: list,
	}
	if doc.Contacts == nil {
		doc.Contacts = []contacts.Contact{}
	}

	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q (use toml, yaml or json)", kerrors.ErrUnsupportedFormat, format)
	}
}
