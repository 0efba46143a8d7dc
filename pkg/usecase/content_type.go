package usecase

import (
	"io/fs"
	"log/slog"
	"mime"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MimeProber detects content types by sniffing file content, falling back to the
// file extension when the content is not recognized
type MimeProber struct{}

var _ interfaces.ContentTypeProber = MimeProber{}

// Probe returns the detected content type or empty string if it is unknown
func (MimeProber) Probe(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open file for probing", goerr.V("path", name))
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", goerr.Wrap(err, "failed to sniff content type", goerr.V("path", name))
	}
	if mt != nil && !mt.Is(types.DefaultContentType) {
		return mt.String(), nil
	}

	if ext := path.Ext(name); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt, nil
		}
	}

	return "", nil
}

// inferContentType never fails: a probe error or unknown type yields the generic
// binary content type
func inferContentType(prober interfaces.ContentTypeProber, fsys fs.FS, name string, logger *slog.Logger) string {
	logger.Debug("Probing content type", "path", name)

	contentType, err := prober.Probe(fsys, name)
	if err != nil {
		logger.Debug("Content type probe failed, using default",
			"path", name,
			"error", err,
			"content_type", types.DefaultContentType,
		)
		return types.DefaultContentType
	}
	if contentType == "" {
		return types.DefaultContentType
	}

	return contentType
}
