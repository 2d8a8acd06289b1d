package ledger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gigurra/spending-ledger/internal/log"
)

// itemsField is the top-level document field holding the record list.
const itemsField = "items"

// document is the whole persisted ledger:
//
//	{
//	  "items": [
//	    {"name": "Coffee", "category": "Food", "amount": 3.50, "timestamp": "2024-03-31T12:00:00.000Z"}
//	  ]
//	}
type document struct {
	Items []Record `json:"items"`
}

// FileStore keeps the ledger as a single JSON document on disk.
//
// Every Append reads the whole document and rewrites it. There is no locking:
// two concurrent appends both load the old document and the later write wins,
// dropping the other record. AtomicWrites only protects against torn files
// (temp file + rename), it does not change that behavior.
type FileStore struct {
	Path         string
	AtomicWrites bool

	logger *log.Logger
}

// NewFileStore returns a store for the ledger at path. A nil logger discards output.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Discard()
	}
	return &FileStore{
		Path:   path,
		logger: logger.WithComponent("store"),
	}
}

// Exists reports whether the ledger file is present.
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.Path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &StoreReadError{Path: s.Path, Err: err}
}

// InitializeEmpty creates a ledger with zero records. An existing ledger is left untouched.
func (s *FileStore) InitializeEmpty() error {
	if dir := filepath.Dir(s.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &StoreWriteError{Path: s.Path, Err: fmt.Errorf("creating directory %s: %w", dir, err)}
		}
	}

	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return &StoreWriteError{Path: s.Path, Err: err}
	}

	data, err := encode(nil)
	if err != nil {
		f.Close()
		return &StoreWriteError{Path: s.Path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return &StoreWriteError{Path: s.Path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StoreWriteError{Path: s.Path, Err: err}
	}

	s.logger.Debug("initialized empty ledger", "path", s.Path)
	return nil
}

// Scan decodes the ledger one record at a time and calls fn for each, in file order.
// Decoding problems are reported as *StoreReadError; errors returned by fn are
// passed through unchanged and stop the scan.
func (s *FileStore) Scan(fn func(Record) error) error {
	f, err := os.Open(s.Path)
	if err != nil {
		return &StoreReadError{Path: s.Path, Err: err}
	}
	defer f.Close()

	count := 0
	err = scanDocument(bufio.NewReader(f), func(r Record) error {
		count++
		return fn(r)
	})
	var malformed *malformedError
	if errors.As(err, &malformed) {
		return &StoreReadError{Path: s.Path, Err: malformed.err}
	}
	if err != nil {
		return err
	}

	s.logger.Debug("scanned ledger", "path", s.Path, "records", count)
	return nil
}

// Load reads every record in the ledger.
func (s *FileStore) Load() ([]Record, error) {
	var records []Record
	err := s.Scan(func(r Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Append adds r to the end of the ledger by rewriting the whole document.
func (s *FileStore) Append(r Record) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	records = append(records, r)

	if err := s.write(records); err != nil {
		return &StoreWriteError{Path: s.Path, Err: err}
	}
	s.logger.Debug("appended record", "path", s.Path, "records", len(records), "atomic", s.AtomicWrites)
	return nil
}

func (s *FileStore) write(records []Record) error {
	data, err := encode(records)
	if err != nil {
		return err
	}
	if !s.AtomicWrites {
		return os.WriteFile(s.Path, data, 0644)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

func encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(document{Items: records}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding ledger: %w", err)
	}
	return append(data, '\n'), nil
}

// malformedError marks decode failures so Scan can tell them apart from callback errors.
type malformedError struct {
	err error
}

func (e *malformedError) Error() string { return e.err.Error() }

func malformed(format string, args ...any) error {
	return &malformedError{err: fmt.Errorf(format, args...)}
}

// scanDocument walks the top-level object token by token and decodes the items
// array element by element, so only one record is held in memory at a time.
func scanDocument(r io.Reader, fn func(Record) error) error {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	seenItems := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return malformed("reading field name: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return malformed("unexpected token %v", tok)
		}

		if key != itemsField {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return malformed("skipping field %q: %w", key, err)
			}
			continue
		}

		seenItems = true
		if err := expectDelim(dec, '['); err != nil {
			return err
		}
		for index := 0; dec.More(); index++ {
			var rec Record
			if err := dec.Decode(&rec); err != nil {
				return malformed("item %d: %w", index, err)
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
		if err := expectDelim(dec, ']'); err != nil {
			return err
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	if !seenItems {
		return malformed("missing %q field", itemsField)
	}
	if _, err := dec.Token(); err != io.EOF {
		return malformed("unexpected data after ledger document")
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return malformed("unexpected end of document, expected %q", want)
	}
	if err != nil {
		return malformed("reading document: %w", err)
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return malformed("expected %q, got %v", want, tok)
	}
	return nil
}
