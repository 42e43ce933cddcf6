package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

var tradeIdSequenceKey = []byte("trade_id_sequence")

// RepoManager opens (or creates if not exists) the badger store on disk and
// holds the persistent repositories in a single data structure.
type RepoManager struct {
	store *badgerhold.Store

	tradeRepository domain.TradeRepository
	feeRepository   domain.FeeRepository
}

// NewRepoManager expects a base data dir and an optional badger logger.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "trades")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening trades db: %w", err)
	}

	seq, err := store.Badger().GetSequence(tradeIdSequenceKey, 1)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("opening trade id sequence: %w", err)
	}

	return &RepoManager{
		store:           store,
		tradeRepository: NewTradeRepositoryImpl(store, seq),
		feeRepository:   NewFeeRepositoryImpl(store),
	}, nil
}

func (d *RepoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *RepoManager) FeeRepository() domain.FeeRepository {
	return d.feeRepository
}

func (d *RepoManager) Close() {
	if r, ok := d.tradeRepository.(*tradeRepositoryImpl); ok {
		r.seq.Release()
	}
	d.store.Close()
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer
	if err := json.NewEncoder(&buff).Encode(value); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if dbDir == "" {
		opts = opts.WithInMemory(true)
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
