//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSchema = `
CREATE TEMP TABLE job_seekers (id BIGINT PRIMARY KEY, user_id BIGINT, full_name TEXT, email TEXT, primary_skills TEXT, experience_years NUMERIC);
CREATE TEMP TABLE job_postings (id BIGINT PRIMARY KEY, recruiter_id BIGINT, job_title TEXT);
CREATE TEMP TABLE applications (id BIGINT PRIMARY KEY, job_id BIGINT, seeker_id BIGINT, status TEXT);
CREATE TEMP TABLE resumes (id BIGINT PRIMARY KEY, user_id BIGINT, filename TEXT);
`

const fixtureData = `
INSERT INTO job_seekers VALUES
  (1, 10, 'Ada', 'ada@example.com', 'python,aws', 3),
  (2, 20, 'Bob', NULL, NULL, NULL),
  (3, 30, 'Cy', 'cy@example.com', 'go', 1);
INSERT INTO job_postings VALUES (100, 7, 'Backend'), (200, 8, 'Other');
INSERT INTO applications VALUES
  (1000, 100, 1, 'shortlisted'),
  (1001, 100, 2, 'applied'),
  (1002, 200, 3, 'shortlisted');
INSERT INTO resumes VALUES (1, 10, 'old.pdf'), (2, 10, 'ada.pdf');
`

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestIntegration_ListCandidates(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	// temp tables only live on one connection
	conn, err := db.pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	_, err = conn.Exec(ctx, fixtureSchema)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, fixtureData)
	require.NoError(t, err)

	rows, err := conn.Query(ctx, listCandidatesSQL, int64(7), "")
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var (
			id                                      int64
			name, email, skills, experience, resume string
		)
		require.NoError(t, rows.Scan(&id, &name, &email, &skills, &experience, &resume))
		names = append(names, name+":"+resume)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Ada:ada.pdf", "Bob:"}, names)

	rows, err = conn.Query(ctx, listCandidatesSQL, int64(7), StatusShortlisted)
	require.NoError(t, err)
	names = nil
	for rows.Next() {
		var (
			id                                      int64
			name, email, skills, experience, resume string
		)
		require.NoError(t, rows.Scan(&id, &name, &email, &skills, &experience, &resume))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Ada"}, names)
}
