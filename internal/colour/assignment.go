package colour

import "math"

// lumaPenalty weights the luminance-difference term of the correspondence
// cost so that pairings keep the relative lightness structure of the
// palettes rather than purely matching hue.
const lumaPenalty = 1.5

// perceptualCost is the pairing cost between two RGB colours: a squared
// channel distance with red-biased weights (the "redmean" asymmetry between
// red and blue sensitivity) plus a luminance penalty.
func perceptualCost(a, b ColorPoint) float64 {
	rBar := (a[0] + b[0]) / 2.0
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]

	wr := 2.0 + rBar/256.0
	wg := 4.0
	wb := 2.0 + (255.0-rBar)/256.0

	dl := Luma(a) - Luma(b)

	return wr*dr*dr + wg*dg*dg + wb*db*db + lumaPenalty*dl*dl
}

// ComputeMapping returns, for every colour of p, the index of its optimally
// assigned colour in target, solving the minimum-cost assignment over the
// perceptual cost matrix with the Hungarian algorithm. When the palettes
// differ in size the matrix is padded with a dummy cost above any real cost,
// and colours assigned to a padding index fall back to index 0.
//
// Both palettes should be in RGB space; the cost formula works on RGB
// channels.
func ComputeMapping(p, target Palette) []int {
	n := max(p.Len(), target.Len())
	if n == 0 {
		return nil
	}

	cost := make([][]float64, n)
	maxCost := 0.0
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			if i < p.Len() && j < target.Len() {
				c := perceptualCost(p.At(i), target.At(j))
				cost[i][j] = c
				if c > maxCost {
					maxCost = c
				}
			} else {
				cost[i][j] = -1 // fill in with the dummy cost below
			}
		}
	}

	dummy := 10.0 * maxCost
	if dummy == 0 {
		dummy = 1
	}
	for i := range cost {
		for j := range cost[i] {
			if cost[i][j] < 0 {
				cost[i][j] = dummy
			}
		}
	}

	assigned := solveAssignment(cost)

	mapping := make([]int, p.Len())
	for i := range mapping {
		j := assigned[i]
		if j >= target.Len() {
			j = 0
		}
		mapping[i] = j
	}
	return mapping
}

// solveAssignment solves the square minimum-cost assignment problem using
// the Hungarian algorithm with dual potentials, O(n^3). It returns the
// assigned column for each row; the result is a bijection on [0, n).
func solveAssignment(cost [][]float64) []int {
	n := len(cost)

	// 1-indexed internally; index 0 is the virtual root of each augmenting
	// path search.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	matchCol := make([]int, n+1) // matchCol[j] = row matched to column j

	for i := 1; i <= n; i++ {
		matchCol[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		way := make([]int, n+1) // predecessor column on the augmenting path
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := matchCol[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[matchCol[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if matchCol[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			matchCol[j0] = matchCol[j1]
			j0 = j1
		}
	}

	result := make([]int, n)
	for j := 1; j <= n; j++ {
		if matchCol[j] > 0 {
			result[matchCol[j]-1] = j - 1
		}
	}
	return result
}
