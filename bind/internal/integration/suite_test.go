//go:build integration

package integration

import (
	"context"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/startdusk/go-sqlbind/bind"
	"github.com/startdusk/go-sqlbind/bind/drivers/mysql"
	"github.com/startdusk/go-sqlbind/bind/drivers/sqlite3"
)

const (
	mysqlDSN  = "root:root@tcp(localhost:13306)/integration_test"
	sqliteDSN = "file:integration_test.db?cache=shared&mode=memory"
)

const mysqlCreateTable = "CREATE TABLE IF NOT EXISTS `simple_struct` (" +
	"`id` BIGINT PRIMARY KEY," +
	"`bool` TINYINT(1) NOT NULL," +
	"`int` BIGINT NOT NULL," +
	"`int8_ptr` TINYINT," +
	"`uint32` INT UNSIGNED NOT NULL," +
	"`float64` DOUBLE NOT NULL," +
	"`byte_array` BLOB," +
	"`string` VARCHAR(255) NOT NULL," +
	"`null_string_ptr` VARCHAR(255)," +
	"`json_column` TEXT" +
	")"

const sqliteCreateTable = "CREATE TABLE IF NOT EXISTS `simple_struct` (" +
	"`id` INTEGER PRIMARY KEY," +
	"`bool` BOOLEAN NOT NULL," +
	"`int` INTEGER NOT NULL," +
	"`int8_ptr` INTEGER," +
	"`uint32` INTEGER NOT NULL," +
	"`float64` REAL NOT NULL," +
	"`byte_array` BLOB," +
	"`string` TEXT NOT NULL," +
	"`null_string_ptr` TEXT," +
	"`json_column` TEXT" +
	")"

func openMySQL() (*bind.DB, error) {
	cfg, err := mysql.ParseDSN(mysqlDSN)
	if err != nil {
		return nil, err
	}
	return mysql.Open(cfg)
}

func openSQLite() (*bind.DB, error) {
	return sqlite3.Open(sqliteDSN)
}

// Suite 负责打开数据库和建表, 具体的测试嵌入它
type Suite struct {
	suite.Suite

	open        func() (*bind.DB, error)
	createTable string
	db          *bind.DB
}

func (s *Suite) SetupSuite() {
	db, err := s.open()
	require.NoError(s.T(), err)
	s.db = db
	res := bind.NewQuery(db, s.createTable).Exec(context.Background())
	require.NoError(s.T(), res.Err())
}

func (s *Suite) TearDownSuite() {
	_ = bind.NewQuery(s.db, "DROP TABLE IF EXISTS `simple_struct`").Exec(context.Background())
	_ = s.db.Close()
}
