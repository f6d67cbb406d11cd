package registry

import (
	"time"

	"github.com/Mindburn-Labs/contracts/pkg/gas"
)

// Token is an issued identity token.
type Token struct {
	ID       string    `json:"id"`
	Owner    string    `json:"owner"`
	IssuedAt time.Time `json:"issued_at"`
}

// Tokens is the identity token registry.
type Tokens struct {
	m *Map[string, Token]
}

// NewTokens returns an empty identity token registry.
func NewTokens(opts ...gas.Option) *Tokens {
	return &Tokens{m: NewMap[string, Token]("identity", opts...)}
}

// Issue records owner for id, stamped with issuedAt. Issuing an existing id
// replaces the previous token; the stamp of a stored token is never changed.
func (t *Tokens) Issue(g gas.Budget, id, owner string, issuedAt time.Time) error {
	id = canonical(id)
	_, err := t.m.Put(g, id, Token{ID: id, Owner: owner, IssuedAt: issuedAt})
	return err
}

// Revoke removes the token for id.
func (t *Tokens) Revoke(g gas.Budget, id string) error {
	return t.m.Delete(g, canonical(id))
}

// OwnerOf returns the owner of id.
func (t *Tokens) OwnerOf(id string) (string, bool) {
	tok, ok := t.m.Get(canonical(id))
	return tok.Owner, ok
}

// Token returns the full record for id.
func (t *Tokens) Token(id string) (Token, bool) {
	return t.m.Get(canonical(id))
}

// Len returns the number of live tokens.
func (t *Tokens) Len() int { return t.m.Len() }
