package mirror

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/omnia-labs/omnia-api/internal/config"
	"github.com/omnia-labs/omnia-api/internal/domain"
)

var ErrUnexpectedStatus = errors.New("mirror node returned an unexpected status")

const (
	tokenTypeNonFungible = "NON_FUNGIBLE_UNIQUE"

	pageLimit = 100
	// maxPages stops a misbehaving node from paging forever.
	maxPages = 50
)

// TokenInfo is the subset of /api/v1/tokens/{id} the client reads.
type TokenInfo struct {
	TokenID  string `json:"token_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Type     string `json:"type"`
	Decimals string `json:"decimals"`
	Memo     string `json:"memo"`
}

type accountTokensPage struct {
	Tokens []struct {
		TokenID string `json:"token_id"`
		Balance int64  `json:"balance"`
	} `json:"tokens"`
	Links struct {
		Next *string `json:"next"`
	} `json:"links"`
}

type nftsPage struct {
	NFTs []struct {
		SerialNumber int64  `json:"serial_number"`
		Metadata     string `json:"metadata"`
	} `json:"nfts"`
}

// Client reads balances and card descriptors from a public ledger mirror
// node. Token info is immutable enough to be cached.
type Client struct {
	baseURL string
	http    *http.Client
	infos   *lru.Cache[string, TokenInfo]
}

func NewClient(conf *config.MirrorConfig) (*Client, error) {
	size := conf.CacheSize
	if size <= 0 {
		size = 512
	}
	cache, err := lru.New[string, TokenInfo](size)
	if err != nil {
		return nil, fmt.Errorf("lru.New -> %w", err)
	}

	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		infos:   cache,
	}, nil
}

// Fetch returns the account's tokens with a positive balance, each carrying
// the card descriptor found on the ledger. Tokens without a usable
// descriptor are skipped, except fungible ones which become FungibleToken
// cards.
func (c *Client) Fetch(ctx context.Context, accountID string) ([]domain.Token, error) {
	next := fmt.Sprintf("/api/v1/accounts/%s/tokens?limit=%d", url.PathEscape(accountID), pageLimit)

	var tokens []domain.Token
	for page := 0; next != "" && page < maxPages; page++ {
		var p accountTokensPage
		if err := c.get(ctx, next, &p); err != nil {
			return nil, fmt.Errorf("c.get account tokens -> %w", err)
		}

		for _, held := range p.Tokens {
			if held.Balance <= 0 {
				continue
			}
			tok, ok, err := c.describe(ctx, accountID, held.TokenID, held.Balance)
			if err != nil {
				return nil, err
			}
			if ok {
				tokens = append(tokens, tok)
			}
		}

		next = ""
		if p.Links.Next != nil {
			next = *p.Links.Next
		}
	}

	return tokens, nil
}

func (c *Client) describe(ctx context.Context, accountID, tokenID string, balance int64) (domain.Token, bool, error) {
	info, err := c.TokenInfo(ctx, tokenID)
	if err != nil {
		return domain.Token{}, false, fmt.Errorf("c.TokenInfo -> %w", err)
	}

	md, ok := decodeDescriptor(info.Memo)
	if info.Type == tokenTypeNonFungible {
		if fromNFT, found, err := c.nftDescriptor(ctx, accountID, tokenID); err != nil {
			return domain.Token{}, false, fmt.Errorf("c.nftDescriptor -> %w", err)
		} else if found {
			md, ok = fromNFT, true
		}
	}

	switch {
	case ok && !md.Type.IsValid():
		zap.L().Warn("skipping token with unknown card type",
			zap.String("token_id", tokenID), zap.String("type", string(md.Type)))
		return domain.Token{}, false, nil
	case !ok && info.Type == tokenTypeNonFungible:
		zap.L().Debug("skipping nft without card descriptor", zap.String("token_id", tokenID))
		return domain.Token{}, false, nil
	case !ok:
		md = fungibleDescriptor(info)
	}
	if md.Name == "" {
		md.Name = info.Name
	}

	return domain.Token{
		TokenID:  tokenID,
		Metadata: md,
		Balance:  clampBalance(balance),
	}, true, nil
}

// TokenInfo loads token info, served from the cache after the first call.
func (c *Client) TokenInfo(ctx context.Context, tokenID string) (TokenInfo, error) {
	if info, ok := c.infos.Get(tokenID); ok {
		return info, nil
	}

	var info TokenInfo
	if err := c.get(ctx, "/api/v1/tokens/"+url.PathEscape(tokenID), &info); err != nil {
		return TokenInfo{}, err
	}
	c.infos.Add(tokenID, info)

	return info, nil
}

func (c *Client) nftDescriptor(ctx context.Context, accountID, tokenID string) (domain.Metadata, bool, error) {
	path := fmt.Sprintf("/api/v1/tokens/%s/nfts?account.id=%s&limit=1",
		url.PathEscape(tokenID), url.QueryEscape(accountID))

	var p nftsPage
	if err := c.get(ctx, path, &p); err != nil {
		return domain.Metadata{}, false, err
	}
	if len(p.NFTs) == 0 {
		return domain.Metadata{}, false, nil
	}

	raw, err := base64.StdEncoding.DecodeString(p.NFTs[0].Metadata)
	if err != nil {
		return domain.Metadata{}, false, nil
	}
	md, ok := decodeDescriptor(string(raw))
	return md, ok, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("c.http.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode -> %w", err)
	}

	return nil
}

// decodeDescriptor accepts a card descriptor encoded as JSON, optionally
// base64 wrapped. Anything else is not a descriptor.
func decodeDescriptor(s string) (domain.Metadata, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Metadata{}, false
	}
	if !strings.HasPrefix(s, "{") {
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return domain.Metadata{}, false
		}
		s = strings.TrimSpace(string(raw))
	}

	var md domain.Metadata
	if err := json.Unmarshal([]byte(s), &md); err != nil || md.Type == "" {
		return domain.Metadata{}, false
	}
	return md, true
}

func fungibleDescriptor(info TokenInfo) domain.Metadata {
	props := map[string]any{"symbol": info.Symbol}
	if d, err := strconv.Atoi(info.Decimals); err == nil {
		props["decimals"] = float64(d)
	}
	return domain.Metadata{
		Type:       domain.CardFungibleToken,
		Name:       info.Name,
		Properties: props,
	}
}

func clampBalance(b int64) int {
	const maxInt = int64(^uint32(0) >> 1)
	if b > maxInt {
		return int(maxInt)
	}
	return int(b)
}
