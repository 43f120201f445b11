package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/staggergrid/internal/model"
)

// GeneticConfig holds parameters for the order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// ScaledGeneticConfig returns the default parameters grown for n items.
func ScaledGeneticConfig(n int) GeneticConfig {
	config := DefaultGeneticConfig()
	if n > 20 {
		config.Generations = 150
	}
	if n > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}
	return config
}

// OrderResult is the best ordering found by OptimizeOrder.
type OrderResult struct {
	Order   []int              `json:"order"` // Indices into the input items
	Items   []model.Item       `json:"items"` // Input items in the suggested order
	Result  model.LayoutResult `json:"result"`
	Fitness float64            `json:"fitness"`
}

// chromosome is a candidate ordering of the input items.
type chromosome struct {
	genes   []int
	fitness float64
}

type orderSearch struct {
	items     []model.Item
	container model.Container
	settings  model.Settings
	config    GeneticConfig
	rng       *rand.Rand
}

// OptimizeOrder searches item orderings for the one that packs into the
// smallest primary extent. Packing itself stays greedy in the given order; the
// search only proposes a better order. The result is deterministic for a seed.
func OptimizeOrder(items []model.Item, c model.Container, s model.Settings, cfg GeneticConfig, seed int64) OrderResult {
	if len(items) == 0 {
		return OrderResult{Result: Arrange(nil, c, s, nil)}
	}
	if cfg.PopulationSize < 2 {
		cfg.PopulationSize = 2
	}
	if cfg.TournamentSize < 1 {
		cfg.TournamentSize = 1
	}

	g := &orderSearch{
		items:     items,
		container: c,
		settings:  s.Normalized(),
		config:    cfg,
		rng:       rand.New(rand.NewSource(seed)),
	}
	best := g.optimize()
	return g.decode(best)
}

func (g *orderSearch) optimize() chromosome {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := min(g.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sortByFitness(population)
	return population[0]
}

// sortByFitness orders by fitness descending. Ties keep their position so the
// seeded orderings win over random ones of equal quality.
func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation seeds the input order and an area-descending order, then
// fills the rest with random permutations.
func (g *orderSearch) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	population[0] = chromosome{genes: identity}
	population[1] = g.createAreaChromosome()

	for i := 2; i < len(population); i++ {
		population[i] = chromosome{genes: g.rng.Perm(n)}
	}
	return population
}

// createAreaChromosome orders items by outer area, largest first.
func (g *orderSearch) createAreaChromosome() chromosome {
	indices := make([]int, len(g.items))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		a, b := g.items[indices[i]], g.items[indices[j]]
		return a.OuterWidth()*a.OuterHeight() > b.OuterWidth()*b.OuterHeight()
	})
	return chromosome{genes: indices}
}

// evaluate scores an ordering by its primary extent, shorter is better. The
// efficiency term is below one unit so it only breaks ties.
func (g *orderSearch) evaluate(c chromosome) float64 {
	result := g.arrange(c)
	return -float64(result.PrimaryExtent()) + result.Efficiency()/200.0
}

func (g *orderSearch) arrange(c chromosome) model.LayoutResult {
	ordered := make([]model.Item, len(c.genes))
	for i, idx := range c.genes {
		ordered[i] = g.items[idx]
	}
	return Arrange(ordered, g.container, g.settings, nil)
}

func (g *orderSearch) decode(c chromosome) OrderResult {
	ordered := make([]model.Item, len(c.genes))
	for i, idx := range c.genes {
		ordered[i] = g.items[idx]
	}
	order := make([]int, len(c.genes))
	copy(order, c.genes)
	return OrderResult{
		Order:   order,
		Items:   ordered,
		Result:  Arrange(ordered, g.container, g.settings, nil),
		Fitness: c.fitness,
	}
}

// tournamentSelect picks the best individual from a random tournament.
func (g *orderSearch) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1). It preserves the relative
// order of genes from both parents.
func (g *orderSearch) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]int, n)}

	inSegment := make(map[int]bool, point2-point1+1)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies swap and inversion mutations.
func (g *orderSearch) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Inversion is less frequent
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func copyChromosome(c chromosome) chromosome {
	genes := make([]int, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}
