//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/startdusk/go-sqlbind/bind"
	"github.com/startdusk/go-sqlbind/bind/internal/test"
)

func TestMySQLQuery(t *testing.T) {
	suite.Run(t, &QuerySuite{
		Suite: Suite{
			open:        openMySQL,
			createTable: mysqlCreateTable,
		},
	})
}

func TestSQLiteQuery(t *testing.T) {
	suite.Run(t, &QuerySuite{
		Suite: Suite{
			open:        openSQLite,
			createTable: sqliteCreateTable,
		},
	})
}

type QuerySuite struct {
	Suite
}

func (s *QuerySuite) SetupSuite() {
	s.Suite.SetupSuite()
	for _, id := range []int64{103, 104} {
		res := test.InsertSimpleStruct(s.db, test.NewSimpleStruct(id)).Exec(context.Background())
		require.NoError(s.T(), res.Err())
	}
}

func (s *QuerySuite) TestGet() {
	db := s.db
	cases := []struct {
		name    string
		q       *bind.QueryAs[test.SimpleStruct]
		wantRes *test.SimpleStruct
		wantErr error
	}{
		{
			name:    "get data",
			q:       bind.Bind(bind.NewQueryAs[test.SimpleStruct](db, "SELECT * FROM `simple_struct` WHERE `id` = ?"), int64(103)),
			wantRes: test.NewSimpleStruct(103),
		},
		{
			name:    "no rows",
			q:       bind.Bind(bind.NewQueryAs[test.SimpleStruct](db, "SELECT * FROM `simple_struct` WHERE `id` = ?"), int64(1002)),
			wantErr: bind.ErrNoRows,
		},
	}

	for _, c := range cases {
		s.T().Run(c.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			res, err := c.q.Get(ctx)
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, c.wantRes, res)
		})
	}
}

func (s *QuerySuite) TestGetMulti() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	q := bind.NewQueryAs[test.SimpleStruct](s.db, "SELECT * FROM `simple_struct` WHERE `id` >= :min ORDER BY `id`")
	res, err := bind.BindNamed(q, "min", int64(103)).GetMulti(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*test.SimpleStruct{test.NewSimpleStruct(103), test.NewSimpleStruct(104)}, res)

	res, err = bind.BindNamed(q, "min", int64(1000)).GetMulti(ctx)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func (s *QuerySuite) TestScalar() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cnt, err := bind.Bind(bind.NewQueryScalar[int64](s.db, "SELECT COUNT(*) FROM `simple_struct` WHERE `bool` = ?"), true).One(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)

	ids, err := bind.Bind(bind.NewQueryScalar[int64](s.db, "SELECT `id` FROM `simple_struct` WHERE `string` = ? ORDER BY `id`"), "world").All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{103, 104}, ids)

	ids, err = bind.Bind(bind.NewQueryScalar[int64](s.db, "SELECT `id` FROM `simple_struct` WHERE `string` = ?"), "nobody").All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids)
}
