package slowquery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startdusk/go-sqlbind/bind"
)

func TestSlowQuery(t *testing.T) {
	var query string
	var args []any
	m := NewMiddlewareBuilder(10 * time.Millisecond).LogFunc(func(q string, as []any, duration time.Duration) {
		query = q
		args = as
	})
	sleep := func(d time.Duration) bind.Middleware {
		return func(next bind.Handler) bind.Handler {
			return func(ctx context.Context, qc *bind.QueryContext) *bind.QueryResult {
				time.Sleep(d)
				return &bind.QueryResult{}
			}
		}
	}

	fast, err := bind.OpenDB(nil, bind.DBWithMiddlewares(m.Build(), sleep(0)))
	require.NoError(t, err)
	_ = bind.Bind(bind.NewQuery(fast, "DELETE FROM t WHERE id = ?"), 1).Exec(context.Background())
	assert.Empty(t, query)

	slow, err := bind.OpenDB(nil, bind.DBWithMiddlewares(m.Build(), sleep(20*time.Millisecond)))
	require.NoError(t, err)
	_ = bind.Bind(bind.NewQuery(slow, "DELETE FROM t WHERE id = ?"), 1).Exec(context.Background())
	assert.Equal(t, "DELETE FROM t WHERE id = ?", query)
	assert.Equal(t, []any{int64(1)}, args)
}
