package cqlutil

import (
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/scylladb/gocqlx/v2"
)

// CreateCluster configures a cluster on the comma separated addr.
func CreateCluster(keyspace, addr string) *gocql.ClusterConfig {
	hosts := strings.Split(addr, ",")
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.RetryPolicy = &gocql.ExponentialBackoffRetryPolicy{
		Min:        time.Second,
		Max:        10 * time.Second,
		NumRetries: 5,
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	return cluster
}

// CreateKeyspace makes sure keyspace exists before a session is bound to it.
func CreateKeyspace(keyspace, addr string) error {
	cluster := CreateCluster("", addr)
	session, err := gocqlx.WrapSession(cluster.CreateSession())
	if err != nil {
		return err
	}
	defer session.Close()

	return session.ExecStmt(`CREATE KEYSPACE IF NOT EXISTS ` + keyspace +
		` WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}`)
}

// Connect opens a gocqlx session on keyspace.
func Connect(keyspace, addr string) (gocqlx.Session, error) {
	return gocqlx.WrapSession(CreateCluster(keyspace, addr).CreateSession())
}
