package document

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/types"
	"github.com/google/uuid"
)

// Store persists documents on a filesystem
type Store struct {
	fs types.FS
}

// NewStore creates a Store over fs
func NewStore(fs types.FS) *Store {
	return &Store{fs: fs}
}

// Open loads the document at path. The result is clean and remembers path.
func (s *Store) Open(path string) (*Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "document %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read document %s", path)
	}

	doc, err := Load(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCorruptDocument, "cannot open %s", path)
	}
	doc.sourcePath = path
	logger := logging.GetLogger("document")
	logger.Debug().Str("path", path).Int("aliases", doc.Len()).Msg("Document read")
	return doc, nil
}

// Write persists doc to its source path
func (s *Store) Write(doc *Document) error {
	if doc.sourcePath == "" {
		return errors.New(errors.ErrNoSourcePath, "document has never been saved")
	}
	return s.WriteAs(doc, doc.sourcePath)
}

// WriteAs persists doc to path and makes path its source. The write goes
// through a temporary file and a rename, so on failure the previous bytes at
// path stay intact and the document stays dirty.
func (s *Store) WriteAs(doc *Document, path string) error {
	logger := logging.GetLogger("document")

	data, err := Save(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp-"+uuid.NewString()[:8])
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", path)
	}

	doc.sourcePath = path
	doc.dirty = false
	logger.Debug().Str("path", path).Int("aliases", doc.Len()).Int("bytes", len(data)).Msg("Document written")
	return nil
}

// Reload re-reads doc's source path and reconciles doc with it. On error doc
// is left untouched.
func (s *Store) Reload(doc *Document) error {
	if doc.sourcePath == "" {
		return errors.New(errors.ErrNoSourcePath, "document has never been saved")
	}
	incoming, err := s.Open(doc.sourcePath)
	if err != nil {
		return err
	}
	Reconcile(doc, incoming)
	return nil
}
