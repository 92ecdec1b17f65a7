package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/hoangvuduyanh33/QA/internal/domain"
	"github.com/hoangvuduyanh33/QA/internal/port"
)

var (
	bucketDocs  = []byte("docs")
	bucketTerms = []byte("terms")
	bucketStats = []byte("stats")
	keyStats    = []byte("corpus_stats")
)

// postingSep separates term from doc id in posting keys. It cannot occur in
// tokenizer output, which never emits control characters.
const postingSep = "\x00"

// BoltStore is a bbolt-backed document database with an inverted index.
// Postings live under composite keys "term\x00docID" so one prefix scan
// yields all postings of a term.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open doc db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDocs, bucketTerms, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type docMeta struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	TokenLen int    `json:"token_len"`
}

func (s *BoltStore) PutDoc(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putDoc(tx, doc)
	})
}

func putDoc(tx *bbolt.Tx, doc domain.Document) error {
	data, err := json.Marshal(docMeta{
		Title:    doc.Title,
		Text:     doc.Text,
		TokenLen: doc.TokenLen,
	})
	if err != nil {
		return err
	}
	return tx.Bucket(bucketDocs).Put([]byte(doc.ID), data)
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = domain.Document{
			ID:       id,
			Title:    meta.Title,
			Text:     meta.Text,
			TokenLen: meta.TokenLen,
		}
		return nil
	})
	return doc, err
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, domain.Document{
				ID:       string(k),
				Title:    meta.Title,
				Text:     meta.Text,
				TokenLen: meta.TokenLen,
			})
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) PutPosting(term, docID string, tf int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putPosting(tx, term, docID, tf)
	})
}

func putPosting(tx *bbolt.Tx, term, docID string, tf int) error {
	key := []byte(term + postingSep + docID)
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, uint64(tf))
	return tx.Bucket(bucketTerms).Put(key, buf[:n])
}

func (s *BoltStore) GetPostings(term string) ([]domain.Posting, error) {
	var postings []domain.Posting
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketTerms).Cursor()
		prefix := []byte(term + postingSep)
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			tf, n := binary.Uvarint(v)
			if n <= 0 {
				return fmt.Errorf("corrupt posting for term %q", term)
			}
			postings = append(postings, domain.Posting{
				DocID: string(k[len(prefix):]),
				TF:    int(tf),
			})
		}
		return nil
	})
	return postings, err
}

// IndexBatch writes documents and their postings in a single transaction.
func (s *BoltStore) IndexBatch(docs []port.IndexedDoc) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, d := range docs {
			if err := putDoc(tx, d.Doc); err != nil {
				return err
			}
			for term, tf := range d.TermFreqs {
				if err := putPosting(tx, term, d.Doc.ID, tf); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil // empty corpus
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
