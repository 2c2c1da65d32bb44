package device

// Score weights. A constraint that is present in the profile identity but
// not satisfied by the device makes the whole match fail.
const (
	ScoreModel   = 1
	ScoreVersion = 1
	ScoreName    = 1
	ScorePhys    = 2
	ScoreUniq    = 4
)

// NoMatch is the score of an identity that does not match at all.
const NoMatch = 0

// Match computes how well the profile identity i matches the concrete
// device identity dev. It returns NoMatch if they do not match; otherwise
// a higher score means a more specific match.
//
// Bus type, vendor and product must be equal. An equal version or name
// raise the score. A non-empty Phys and a present Uniq are constraints:
// they must be equal to the device's and raise the score when they are.
func (i Identity) Match(dev Identity) int {
	if !i.InputID.SameModel(dev.InputID) {
		return NoMatch
	}

	score := ScoreModel
	if i.InputID.Version == dev.InputID.Version {
		score += ScoreVersion
	}
	if i.Name == dev.Name {
		score += ScoreName
	}

	if i.Phys != "" {
		if i.Phys != dev.Phys {
			return NoMatch
		}
		score += ScorePhys
	}

	if i.Uniq != nil {
		if dev.Uniq == nil || *i.Uniq != *dev.Uniq {
			return NoMatch
		}
		score += ScoreUniq
	}

	return score
}
