// Package reserve remembers coins handed out by a selection so the next
// selection does not pick them again before they are spent.
package reserve

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

var keyPrefix = []byte("reserved/")

// Reservation holds a coin until Expiry.
type Reservation struct {
	CoinID chain.Bytes32 `json:"coin_id"`
	Expiry time.Time     `json:"expiry"`
}

// Registry is a badger-backed set of reservations. Entries carry a badger TTL
// and are also filtered by their recorded expiry on read.
type Registry struct {
	db  *badger.DB
	log *zap.Logger
	now func() time.Time
}

type options struct {
	inMemory bool
	log      *zap.Logger
}

type Option func(*options)

// InMemory keeps reservations for the life of the process only.
func InMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Open opens or creates the registry under dir.
func Open(dir string, opts ...Option) (*Registry, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	bo := badger.DefaultOptions(dir).WithLogger(nil)
	if o.inMemory {
		bo = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(bo)
	if err != nil {
		return nil, werr.Wrap(werr.KindFileSystem, "failed to open reservation store", err)
	}
	return &Registry{db: db, log: o.log, now: time.Now}, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

// Reserve holds ids for ttl, extending any earlier reservation.
func (r *Registry) Reserve(ids []chain.Bytes32, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("reservation ttl must be positive, got %s", ttl)
	}
	expiry := r.now().Add(ttl)

	err := r.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			e := badger.NewEntry(key(id), encodeExpiry(expiry)).WithTTL(ttl)
			if err := txn.SetEntry(e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return werr.Wrap(werr.KindFileSystem, "failed to reserve coins", err)
	}
	r.log.Debug("reserved coins", zap.Int("count", len(ids)), zap.Time("expiry", expiry))
	return nil
}

// Release drops reservations for ids. Unknown ids are ignored.
func (r *Registry) Release(ids ...chain.Bytes32) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := txn.Delete(key(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return werr.Wrap(werr.KindFileSystem, "failed to release coins", err)
	}
	return nil
}

// Reserved lists live reservations ordered by coin id.
func (r *Registry) Reserved() ([]Reservation, error) {
	now := r.now()
	var out []Reservation

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			item := it.Item()
			var res Reservation
			copy(res.CoinID[:], item.Key()[len(keyPrefix):])

			err := item.Value(func(v []byte) error {
				expiry, err := decodeExpiry(v)
				res.Expiry = expiry
				return err
			})
			if err != nil {
				return err
			}
			if res.Expiry.After(now) {
				out = append(out, res)
			}
		}
		return nil
	})
	if err != nil {
		return nil, werr.Wrap(werr.KindFileSystem, "failed to read reservations", err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CoinID.Less(out[j].CoinID)
	})
	return out, nil
}

// IsReserved reports whether id has a live reservation.
func (r *Registry) IsReserved(id chain.Bytes32) (bool, error) {
	var live bool
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			expiry, err := decodeExpiry(v)
			live = expiry.After(r.now())
			return err
		})
	})
	if err != nil {
		return false, werr.Wrap(werr.KindFileSystem, "failed to read reservation", err)
	}
	return live, nil
}

func key(id chain.Bytes32) []byte {
	return append(append([]byte{}, keyPrefix...), id[:]...)
}

func encodeExpiry(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixNano()))
	return b
}

func decodeExpiry(b []byte) (time.Time, error) {
	if len(b) != 8 {
		return time.Time{}, fmt.Errorf("corrupt reservation value of %d bytes", len(b))
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(b))), nil
}
