package store

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type connectionSQLStoreSuite struct {
	connectionStore *ConnectionSQLStore
	db              *sql.DB
	suite.Suite
}

func TestConnectionSQLStore(t *testing.T) {
	suite.Run(t, new(connectionSQLStoreSuite))
}

func (suite *connectionSQLStoreSuite) SetupSuite() {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		log.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	suite.db = db

	RunMigrations(db, "sqlite")

	suite.connectionStore = NewConnectionSQLStore(db, db)
}

func (suite *connectionSQLStoreSuite) TearDownSuite() {
	suite.db.Close()
}

func (suite *connectionSQLStoreSuite) SetupTest() {
	_, err := suite.db.Exec("delete from connections")
	suite.NoError(err)
}

func (suite *connectionSQLStoreSuite) TestCreateConnection() {
	// arrange
	ctx := context.Background()
	connectedOn := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	// act
	err := suite.connectionStore.CreateConnection(ctx, "conn-1", connectedOn)

	// assert
	suite.NoError(err)
	connections, err := suite.connectionStore.ListConnections(ctx)
	suite.NoError(err)
	suite.Len(connections, 1)
	suite.Equal("conn-1", connections[0].ConnectionID)
	suite.True(connectedOn.Equal(connections[0].ConnectedOn))
}

func (suite *connectionSQLStoreSuite) TestCreateConnection_Reconnect() {
	// arrange
	ctx := context.Background()
	first := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)
	suite.NoError(suite.connectionStore.CreateConnection(ctx, "conn-1", first))

	// act
	err := suite.connectionStore.CreateConnection(ctx, "conn-1", second)

	// assert
	suite.NoError(err)
	connections, err := suite.connectionStore.ListConnections(ctx)
	suite.NoError(err)
	suite.Len(connections, 1)
	suite.True(second.Equal(connections[0].ConnectedOn))
}

func (suite *connectionSQLStoreSuite) TestDeleteConnection() {
	// arrange
	ctx := context.Background()
	now := time.Now()
	suite.NoError(suite.connectionStore.CreateConnection(ctx, "conn-1", now))
	suite.NoError(suite.connectionStore.CreateConnection(ctx, "conn-2", now))

	// act
	err := suite.connectionStore.DeleteConnection(ctx, "conn-1")

	// assert
	suite.NoError(err)
	connections, err := suite.connectionStore.ListConnections(ctx)
	suite.NoError(err)
	suite.Len(connections, 1)
	suite.Equal("conn-2", connections[0].ConnectionID)
}

func (suite *connectionSQLStoreSuite) TestDeleteConnection_Unknown() {
	err := suite.connectionStore.DeleteConnection(context.Background(), "missing")

	suite.NoError(err)
}
