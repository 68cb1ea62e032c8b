package profile

// Profile defines how a sweep walks discard offsets through a stream.
type Profile struct {
	Name   string
	Step   int    // discard offset increment between passes
	Count  int    // number of passes
	Format string // output format
	Scale  int    // nearest-neighbour upscale per frame
}

// Built-in profiles. The steps match interactive nudges of 1, 5 and 100 chunks.
var profiles = map[string]Profile{
	"single": {
		Name:   "single",
		Step:   1,
		Count:  16,
		Format: "png",
		Scale:  1,
	},
	"fine": {
		Name:   "fine",
		Step:   5,
		Count:  20,
		Format: "png",
		Scale:  1,
	},
	"coarse": {
		Name:   "coarse",
		Step:   100,
		Count:  50,
		Format: "jpeg",
		Scale:  1,
	},
}

// Get returns a profile by name. Falls back to fine if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["fine"]
	p.Name = name // preserve requested name
	return p
}

// Offsets returns the discard offsets of a sweep starting at from.
// Negative offsets are clamped to 0 and duplicates dropped.
func (p Profile) Offsets(from int) []int {
	step := p.Step
	if step <= 0 {
		step = 1
	}
	seen := map[int]bool{}
	var result []int
	for i := 0; i < p.Count; i++ {
		k := from + i*step
		if k < 0 {
			k = 0
		}
		if !seen[k] {
			seen[k] = true
			result = append(result, k)
		}
	}
	return result
}
