// Package history records benchmark results in a bbolt database file,
// so runs of different traversal families can be compared over time.
package history

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"go.llib.dev/conslist/internal/bench"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/testcase/clock"

	bolt "go.etcd.io/bbolt"
)

const ErrNotFound errorkit.Error = "ErrNotFound"

const bucketResults = "results"

type Record struct {
	Seq        int       `json:"seq"`
	RecordedAt time.Time `json:"recorded_at"`
	bench.Result
}

type Store struct {
	db *bolt.DB
}

// Open opens the history file at path, creating it when missing.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketResults))
		return err
	})
	if err != nil {
		return nil, errorkit.Merge(err, db.Close())
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add records res and returns its sequence number.
func (s *Store) Add(res bench.Result) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketResults))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(Record{
			Seq:        int(seq),
			RecordedAt: clock.Now().UTC(),
			Result:     res,
		})
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	return int(seq), err
}

// Get looks up the record with the given sequence number.
func (s *Store) Get(seq int) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketResults)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNotFound.F("no record with sequence number %d", seq)
		}
		return json.Unmarshal(v, &rec)
	})
	return rec, err
}

// Last returns at most n records, the most recent one first.
// When traversal is not empty, only records of that traversal family are considered.
func (s *Store) Last(n int, traversal bench.Traversal) ([]Record, error) {
	var recs []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketResults)).Cursor()
		for k, v := c.Last(); k != nil && len(recs) < n; k, v = c.Prev() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if traversal != "" && rec.Traversal != traversal {
				continue
			}
			recs = append(recs, rec)
		}
		return nil
	})
	return recs, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
