package vrpio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/routewise/ails-cvrp/solution"
)

// WriteSolution writes sol to <solutionDir>/<instanceName>.sol in spec.md
// §6's output grammar: one "Route N : id1 id2 ... idk" line per non-empty
// route (depot excluded, in route order), followed by a "Cost <f>" line.
func WriteSolution(solutionDir, instanceName string, sol *solution.Solution) error {
	if err := os.MkdirAll(solutionDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(solutionDir, instanceName+".sol")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	n := 0
	for _, r := range sol.Routes {
		if r == nil || r.Removed || r.IsEmpty() {
			continue
		}
		ids, err := sol.Customers(r)
		if err != nil {
			return err
		}
		n++
		fmt.Fprintf(w, "Route %d :", n)
		for _, id := range ids {
			fmt.Fprintf(w, " %d", id)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Cost %g\n", sol.Cost)

	return w.Flush()
}
