package beacon

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("commitment not found")
	ErrNotReady = errors.New("reveal not ready")
)

// Commitment é um compromisso de aleatoriedade: o digest é publicado no slot
// de criação e o valor só é revelado depois que o slot passa.
type Commitment struct {
	Ref        string
	CommitSlot uint64
	Digest     string // sha256(value) em hex
	value      [32]byte
}

// Beacon mantém o contador de slots e os compromissos pendentes.
// O relógio de slots é externo (ticker no main) via Advance.
type Beacon struct {
	mu          sync.RWMutex
	slot        uint64
	commitments map[string]*Commitment
}

func New() *Beacon {
	return &Beacon{commitments: make(map[string]*Commitment)}
}

// Advance avança o slot em 1 e retorna o novo valor
func (b *Beacon) Advance() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slot++
	return b.slot
}

// Slot retorna o slot corrente
func (b *Beacon) Slot() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.slot
}

// Commit gera um novo compromisso ancorado no slot corrente
func (b *Beacon) Commit() (Commitment, error) {
	var value [32]byte
	if _, err := rand.Read(value[:]); err != nil {
		return Commitment{}, err
	}
	digest := sha256.Sum256(value[:])

	b.mu.Lock()
	defer b.mu.Unlock()
	c := &Commitment{
		Ref:        uuid.New().String(),
		CommitSlot: b.slot,
		Digest:     hex.EncodeToString(digest[:]),
		value:      value,
	}
	b.commitments[c.Ref] = c
	return *c, nil
}

// Lookup retorna os dados públicos de um compromisso (sem o valor)
func (b *Beacon) Lookup(ref string) (Commitment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.commitments[ref]
	if !ok {
		return Commitment{}, ErrNotFound
	}
	out := *c
	out.value = [32]byte{}
	return out, nil
}

// Reveal devolve o valor comprometido. Só libera quando o slot corrente já
// passou do slot de criação, senão o valor poderia ser visto antes da aposta.
func (b *Beacon) Reveal(ref string) ([32]byte, uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.commitments[ref]
	if !ok {
		return [32]byte{}, 0, ErrNotFound
	}
	if b.slot <= c.CommitSlot {
		return [32]byte{}, 0, ErrNotReady
	}
	return c.value, b.slot, nil
}
