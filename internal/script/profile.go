package script

import (
	"fmt"

	"github.com/dshills/joyprog/internal/profile"
)

// CheckProfile generates and checks the code of every key profile of p.
// Each key is checked as its own chunk, named after the key.
func CheckProfile(p *profile.Profile) (map[string]*Result, error) {
	results := make(map[string]*Result, len(p.KeyProfiles()))
	for _, kp := range p.KeyProfiles() {
		lines, err := p.LuaCode(kp)
		if err != nil {
			return nil, err
		}
		chunk := kp.Code.String()
		res, err := Check(chunk, lines)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		results[chunk] = res
	}
	return results, nil
}
