package bind

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestModel struct {
	ID        int64
	FirstName string
	Age       int8
	LastName  *sql.NullString
}

func Test_Query_Exec(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	driverErr := errors.New("constraint failed")
	db, err := OpenDB(mockDB, DBWithErrorClassifier(func(err error) bool {
		return err == driverErr
	}))
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO `test_model`").
		WithArgs(int64(1), "Tom", int64(18), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `test_model`").
		WithArgs(int64(1), "Tom", int64(18), nil).
		WillReturnError(driverErr)
	execErr := errors.New("exec error")
	mock.ExpectExec("DELETE FROM `test_model`").
		WithArgs(int64(1)).
		WillReturnError(execErr)

	insert := NewQuery(db, "INSERT INTO `test_model` VALUES (?, ?, ?, ?)")
	insert = Bind(insert, 1)
	insert = Bind(insert, "Tom")
	insert = Bind(insert, int8(18))
	insert = BindNull(insert, TypeText)

	res := insert.Exec(context.Background())
	require.NoError(t, res.Err())
	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// 驱动认为是参数的问题, 包装成 BindError
	res = insert.Exec(context.Background())
	var bindErr *BindError
	require.True(t, errors.As(res.Err(), &bindErr))
	assert.Equal(t, -1, bindErr.Slot)
	assert.ErrorIs(t, res.Err(), driverErr)

	// 其他错误原样返回
	res = Bind(NewQuery(db, "DELETE FROM `test_model` WHERE `id` = ?"), 1).Exec(context.Background())
	assert.Equal(t, execErr, res.Err())

	// 生成失败的语句不会到达数据库
	res = NewQuery(db, "DELETE FROM `test_model` WHERE `id` = ?").Exec(context.Background())
	assert.ErrorIs(t, res.Err(), ErrPlaceholderMismatch)
	_, err = res.RowsAffected()
	assert.ErrorIs(t, err, ErrPlaceholderMismatch)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryAs_Get(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	queryErr := errors.New("query error")
	mock.ExpectQuery("SELECT .*").WillReturnError(queryErr)

	rows := sqlmock.NewRows([]string{"id", "first_name", "age", "last_name"})
	mock.ExpectQuery("SELECT .*").WithArgs(int64(-1)).WillReturnRows(rows)

	rows = sqlmock.NewRows([]string{"id", "first_name", "age", "last_name"})
	// 数据库查询出来的数据返回的都是文本类型, 所以这里可以用字符串
	rows.AddRow("1", "Tom", "18", "Jerry")
	mock.ExpectQuery("SELECT .*").WithArgs(int64(1)).WillReturnRows(rows)

	rows = sqlmock.NewRows([]string{"id", "nick_name"})
	rows.AddRow("1", "Tom")
	mock.ExpectQuery("SELECT .*").WithArgs(int64(2)).WillReturnRows(rows)

	cases := []struct {
		name    string
		q       *QueryAs[TestModel]
		wantErr error
		wantRes *TestModel
	}{
		{
			name:    "query error",
			q:       NewQueryAs[TestModel](db, "SELECT * FROM `test_model`"),
			wantErr: queryErr,
		},
		{
			name:    "no rows",
			q:       Bind(NewQueryAs[TestModel](db, "SELECT * FROM `test_model` WHERE `id` = ?"), -1),
			wantErr: ErrNoRows,
		},
		{
			name: "data",
			q:    Bind(NewQueryAs[TestModel](db, "SELECT * FROM `test_model` WHERE `id` = ?"), 1),
			wantRes: &TestModel{
				ID:        1,
				FirstName: "Tom",
				Age:       18,
				LastName:  &sql.NullString{Valid: true, String: "Jerry"},
			},
		},
		{
			name:    "unknown column",
			q:       Bind(NewQueryAs[TestModel](db, "SELECT * FROM `test_model` WHERE `id` = ?"), 2),
			wantErr: fmt.Errorf("%w nick_name", ErrUnknownColumn),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := c.q.Get(context.Background())
			assert.Equal(t, c.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, c.wantRes, res)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryAs_GetMulti(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db, err := OpenDB(mockDB, DBUseReflect())
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "first_name"})
	rows.AddRow("1", "Tom")
	rows.AddRow("2", "Jerry")
	mock.ExpectQuery("SELECT `id`, `first_name` FROM `test_model` WHERE `age` > ?").
		WithArgs(int64(10)).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT .*").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}))

	q := NewQueryAs[TestModel](db, "SELECT `id`, `first_name` FROM `test_model` WHERE `age` > ?")
	res, err := Bind(q, 10).GetMulti(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*TestModel{
		{ID: 1, FirstName: "Tom"},
		{ID: 2, FirstName: "Jerry"},
	}, res)

	res, err = Bind(q, 100).GetMulti(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_QueryScalar(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db, err := OpenDB(mockDB, DBWithDialect(DialectPostgreSQL))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM test_model WHERE age > \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow("2"))
	mock.ExpectQuery(`SELECT first_name FROM test_model WHERE age > \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name"}).AddRow("Tom").AddRow("Jerry"))
	mock.ExpectQuery(`SELECT first_name FROM test_model WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"first_name"}))

	cnt, err := Bind(NewQueryScalar[int64](db, "SELECT COUNT(*) FROM test_model WHERE age > ?"), 10).
		One(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)

	names, err := Bind(NewQueryScalar[string](db, "SELECT first_name FROM test_model WHERE age > ?"), 10).
		All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tom", "Jerry"}, names)

	_, err = Bind(NewQueryScalar[string](db, "SELECT first_name FROM test_model WHERE id = ?"), 3).
		One(context.Background())
	assert.Equal(t, ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_DB_With(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `test_model`").WithArgs("Tom", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := mockDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	q := NewQuery(db.With(tx), "UPDATE `test_model` SET `first_name` = ? WHERE `id` = ?")
	q = Bind(q, "Tom")
	q = Bind(q, 1)
	require.NoError(t, q.Exec(context.Background()).Err())
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Middleware(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	var trace []string
	mdl := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, qc *QueryContext) *QueryResult {
				trace = append(trace, name+":"+qc.Type.String())
				return next(ctx, qc)
			}
		}
	}
	dryRun := func(next Handler) Handler {
		return func(ctx context.Context, qc *QueryContext) *QueryResult {
			d, err := qc.Descriptor()
			require.NoError(t, err)
			trace = append(trace, d.SQL)
			// 不调用 next 就是 dry run
			return &QueryResult{}
		}
	}
	db, err := OpenDB(mockDB, DBWithMiddlewares(mdl("first"), mdl("second"), dryRun))
	require.NoError(t, err)

	res := Bind(NewQuery(db, "DELETE FROM t WHERE id = ?"), 1).Exec(context.Background())
	assert.NoError(t, res.Err())
	_, err = Bind(NewQueryScalar[int](db, "SELECT 1 FROM t WHERE id = ?"), 1).One(context.Background())
	assert.NoError(t, err)
	_, err = NewQueryAs[TestModel](db, "SELECT * FROM t").Get(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, []string{
		"first:EXEC", "second:EXEC", "DELETE FROM t WHERE id = ?",
		"first:SCALAR", "second:SCALAR", "SELECT 1 FROM t WHERE id = ?",
		"first:ROW", "second:ROW", "SELECT * FROM t",
	}, trace)
	// 什么都没有执行
	assert.NoError(t, mock.ExpectationsWereMet())
}
