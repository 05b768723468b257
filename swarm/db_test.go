package swarm

import (
	"database/sql"
	"testing"

	_ "github.com/mxk/go-sqlite/sqlite3"

	"github.com/SioKCronin/pyswarms"
)

func TestDb(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	const iters = 10
	s, err := New(5, 2, testOptions(), DB(db), Seed(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Optimize(pyswarms.Func(sphere), iters); err != nil {
		t.Fatal(err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblParticles).Scan(&count)
	if err != nil {
		t.Errorf("[ERROR] particles table query failed: %v", err)
	} else if count != 5*iters {
		t.Errorf("[ERROR] particles table has %v rows, expected %v", count, 5*iters)
	}

	count = 0
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblParticlesBest).Scan(&count)
	if err != nil {
		t.Errorf("[ERROR] particle bests table query failed: %v", err)
	} else if count != 5*iters {
		t.Errorf("[ERROR] particle bests table has %v rows, expected %v", count, 5*iters)
	}

	count = 0
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblBest).Scan(&count)
	if err != nil {
		t.Errorf("[ERROR] best table query failed: %v", err)
	} else if count != iters {
		t.Errorf("[ERROR] best table has %v rows, expected %v", count, iters)
	}
}
