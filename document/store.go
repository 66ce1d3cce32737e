package document

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"

	"honnef.co/go/epicycles"
)

// DefaultTermsName is the file term series are saved to unless named
// otherwise.
const DefaultTermsName = "CustomFourierSeries.json"

// Store keeps documents in a directory.
type Store struct {
	logger  l.Wrapper
	root    string
	storage stg.FileStorage
}

// NewStore returns a store of the files below root, creating root if
// needed. An empty root resolves names against the working directory.
func NewStore(root string, logger l.Wrapper) *Store {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	logger = logger.WithFields(l.StringField(l.ClsKey, "Store"))

	if root != "" {
		if err := pathutils.MustDirExists(root); err != nil {
			logger.WithFields(l.ErrorField(err), l.StringField("root", root)).Error("creating root failed")
		}
	}

	return &Store{
		logger:  logger,
		root:    root,
		storage: rawfs.NewFSStorage(root),
	}
}

func (s *Store) prepare(name string) {
	dir := filepath.Dir(filepath.Join(s.root, name))
	if err := pathutils.MustDirExists(dir); err != nil {
		s.logger.WithFields(l.ErrorField(err), l.StringField("dir", dir)).Error("creating directory failed")
	}
}

// LoadTerms reads the term series in the named file.
func (s *Store) LoadTerms(name string) (epicycles.Terms, error) {
	d, err := s.storage.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	terms, err := ReadTerms(bytes.NewReader(d))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return terms, nil
}

// SaveTerms writes a term series to the named file, replacing it.
func (s *Store) SaveTerms(name string, terms epicycles.Terms) error {
	var buf bytes.Buffer
	if err := WriteTerms(&buf, terms); err != nil {
		return err
	}
	s.prepare(name)
	if err := s.storage.WriteFile(name, buf.Bytes()); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// LoadPoints reads the drawing in the named file.
func (s *Store) LoadPoints(name string) ([]epicycles.Point, error) {
	d, err := s.storage.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	pts, err := ReadPoints(bytes.NewReader(d))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return pts, nil
}

// SavePoints writes a drawing to the named file, replacing it.
func (s *Store) SavePoints(name string, points []epicycles.Point) error {
	var buf bytes.Buffer
	if err := WritePoints(&buf, points); err != nil {
		return err
	}
	s.prepare(name)
	if err := s.storage.WriteFile(name, buf.Bytes()); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	return nil
}

// LoadTerms reads the term series in the file at path.
func LoadTerms(path string) (epicycles.Terms, error) {
	return NewStore("", nil).LoadTerms(path)
}

// SaveTerms writes a term series to the file at path.
func SaveTerms(path string, terms epicycles.Terms) error {
	return NewStore("", nil).SaveTerms(path, terms)
}
