package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const oauthStateTTL = 10 * time.Minute

// In-process fallback for deployments without redis. Single-instance
// only; multi-instance installs need redis for the handshake to survive
// load balancing.
var (
	localStatesMu sync.Mutex
	localStates   = map[string]localState{}
)

type localState struct {
	shopDomain string
	expiresAt  time.Time
}

// NewOAuthState issues a one-time anti-forgery nonce bound to the shop
// beginning the handshake.
func NewOAuthState(ctx context.Context, shopDomain string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	if Enabled() {
		err := redisClient.Set(ctx, buildKey("oauth_state:"+state), shopDomain, oauthStateTTL).Err()
		if err != nil {
			return "", err
		}
		return state, nil
	}

	localStatesMu.Lock()
	defer localStatesMu.Unlock()
	pruneLocalStates(time.Now())
	localStates[state] = localState{
		shopDomain: shopDomain,
		expiresAt:  time.Now().Add(oauthStateTTL),
	}
	return state, nil
}

// ConsumeOAuthState validates and burns a nonce, returning the shop it
// was issued for. A nonce can be consumed exactly once.
func ConsumeOAuthState(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", errors.New("oauth state missing")
	}

	if Enabled() {
		key := buildKey("oauth_state:" + state)
		shopDomain, err := redisClient.GetDel(ctx, key).Result()
		if err == redis.Nil {
			return "", errors.New("oauth state unknown or expired")
		}
		if err != nil {
			return "", err
		}
		return shopDomain, nil
	}

	localStatesMu.Lock()
	defer localStatesMu.Unlock()
	entry, ok := localStates[state]
	delete(localStates, state)
	if !ok || time.Now().After(entry.expiresAt) {
		return "", errors.New("oauth state unknown or expired")
	}
	return entry.shopDomain, nil
}

func pruneLocalStates(now time.Time) {
	for state, entry := range localStates {
		if now.After(entry.expiresAt) {
			delete(localStates, state)
		}
	}
}
