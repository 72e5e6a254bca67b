package routing

// DefaultMaxHops bounds an itinerary to three segments (two intermediate stops).
const DefaultMaxHops = 3

// SimplePaths enumerates every airport sequence from origin to destination that
// uses at most maxHops edges and never repeats an airport. Time is ignored here.
func (g *Graph) SimplePaths(origin, destination string, maxHops int) [][]string {
	if origin == destination || maxHops < 1 {
		return nil
	}
	if !g.HasNode(origin) || !g.HasNode(destination) {
		return nil
	}

	var paths [][]string
	visited := map[string]bool{origin: true}
	stack := []string{origin}

	var walk func(node string)
	walk = func(node string) {
		for _, next := range g.Neighbors(node) {
			if visited[next] {
				continue
			}
			if next == destination {
				path := make([]string, len(stack)+1)
				copy(path, stack)
				path[len(stack)] = next
				paths = append(paths, path)
				continue
			}
			// a path through next needs at least len(stack)+1 edges
			if len(stack)+1 > maxHops {
				continue
			}
			visited[next] = true
			stack = append(stack, next)
			walk(next)
			stack = stack[:len(stack)-1]
			visited[next] = false
		}
	}
	walk(origin)
	return paths
}
