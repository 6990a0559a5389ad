package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Ranker mantém o ranking de pontos de lealdade num sorted set do Redis.
// O casino-service só lê este conjunto; quem escreve é o worker.
type Ranker struct {
	r   *redis.Client
	key string
}

func NewRanker(r *redis.Client, key string) *Ranker {
	return &Ranker{r: r, key: key}
}

// Add incrementa os pontos de um usuário no ranking
func (rk *Ranker) Add(ctx context.Context, userID string, points int64) error {
	if points <= 0 {
		return nil
	}
	return rk.r.ZIncrBy(ctx, rk.key, float64(points), userID).Err()
}
