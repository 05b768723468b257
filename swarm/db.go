package swarm

import "fmt"

const (
	// TblParticles is the name of the sql database table that contains
	// positions and costs for particles for each iteration.
	TblParticles = "swarmparticles"
	// TblParticlesBest is the name of the sql database table that contains
	// each particle's personal best position at each iteration.
	TblParticlesBest = "swarmparticlesbest"
	// TblBest is the name of the sql database table that contains the best
	// position for the entire swarm at each iteration.
	TblBest = "swarmbest"
)

func (s *Swarm) initdb() error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS " + TblParticles + " (particle INTEGER, iter INTEGER, val REAL" + s.xdbsql("define") + ");",
		"CREATE TABLE IF NOT EXISTS " + TblParticlesBest + " (particle INTEGER, iter INTEGER, best REAL" + s.xdbsql("define") + ");",
		"CREATE TABLE IF NOT EXISTS " + TblBest + " (iter INTEGER, val REAL" + s.xdbsql("define") + ");",
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Swarm) xdbsql(op string) string {
	str := ""
	for i := 0; i < s.dims; i++ {
		switch op {
		case "?":
			str += ",?"
		case "define":
			str += fmt.Sprintf(",x%v REAL", i)
		case "x":
			str += fmt.Sprintf(",x%v", i)
		default:
			panic("invalid db op " + op)
		}
	}
	return str
}

func row2iface(row []float64) []interface{} {
	iface := []interface{}{}
	for _, v := range row {
		iface = append(iface, v)
	}
	return iface
}

// updatedb inserts the current iteration's particle positions, personal
// bests, and swarm best.
func (s *Swarm) updatedb() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	s0 := "INSERT INTO " + TblParticles + " (particle,iter,val" + s.xdbsql("x") + ") VALUES (?,?,?" + s.xdbsql("?") + ");"
	s1 := "INSERT INTO " + TblParticlesBest + " (particle,iter,best" + s.xdbsql("x") + ") VALUES (?,?,?" + s.xdbsql("?") + ");"
	for i := 0; i < s.n; i++ {
		args := []interface{}{i, s.iter, s.cost[i]}
		args = append(args, row2iface(s.pos.RawRowView(i))...)
		if _, err := tx.Exec(s0, args...); err != nil {
			return err
		}

		args = []interface{}{i, s.iter, s.pbestCost[i]}
		args = append(args, row2iface(s.pbestPos.RawRowView(i))...)
		if _, err := tx.Exec(s1, args...); err != nil {
			return err
		}
	}

	s2 := "INSERT INTO " + TblBest + " (iter,val" + s.xdbsql("x") + ") VALUES (?,?" + s.xdbsql("?") + ");"
	args := []interface{}{s.iter, s.bestCost}
	args = append(args, row2iface(s.bestPos)...)
	if _, err := tx.Exec(s2, args...); err != nil {
		return err
	}

	return tx.Commit()
}
