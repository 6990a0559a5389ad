package oracle

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/casino-platform-poc/internal/casino-service/lifecycle"
)

// Client consome o beacon-simulator via HTTP, implementando
// lifecycle.RandomnessSource. O núcleo só enxerga esta interface; o formato
// de wire do beacon fica todo aqui.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

type commitmentResp struct {
	Ref        string `json:"ref"`
	CommitSlot uint64 `json:"commit_slot"`
	Digest     string `json:"digest"`
}

type revealResp struct {
	Value string `json:"value"` // 32 bytes em hex
	Slot  uint64 `json:"slot"`
}

type slotResp struct {
	Slot uint64 `json:"slot"`
}

func (c *Client) Commitment(ctx context.Context, ref string) (lifecycle.Commitment, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/commitments/"+ref, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return lifecycle.Commitment{}, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return lifecycle.Commitment{}, fmt.Errorf("beacon commitment http %d", res.StatusCode)
	}
	var out commitmentResp
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return lifecycle.Commitment{}, err
	}
	return lifecycle.Commitment{Ref: out.Ref, CommitSlot: out.CommitSlot, Digest: out.Digest}, nil
}

func (c *Client) Reveal(ctx context.Context, ref string, currentSlot uint64) ([32]byte, error) {
	url := fmt.Sprintf("%s/commitments/%s/reveal?slot=%d", c.BaseURL, ref, currentSlot)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return [32]byte{}, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusConflict {
		return [32]byte{}, lifecycle.ErrRevealNotReady
	}
	if res.StatusCode >= 300 {
		return [32]byte{}, fmt.Errorf("beacon reveal http %d", res.StatusCode)
	}
	var out revealResp
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return [32]byte{}, err
	}
	raw, err := hex.DecodeString(out.Value)
	if err != nil || len(raw) != 32 {
		return [32]byte{}, fmt.Errorf("beacon reveal: valor inválido")
	}
	var value [32]byte
	copy(value[:], raw)
	return value, nil
}

func (c *Client) CurrentSlot(ctx context.Context) (uint64, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/slot", nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return 0, fmt.Errorf("beacon slot http %d", res.StatusCode)
	}
	var out slotResp
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Slot, nil
}
