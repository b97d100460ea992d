package database

// Delta compares the two most recent records of one command for a domain.
type Delta struct {
	// Command is the command both records belong to.
	Command string

	// Latest is the most recent record.
	Latest RunRecord

	// Previous is the record before Latest.
	Previous RunRecord

	// Change is Latest.Count minus Previous.Count.
	Change int

	// Unchanged reports that both runs produced identical artifacts.
	Unchanged bool
}

// Deltas computes one Delta per command that has at least two records.
// records must be ordered newest first, as returned by GetHistory; the
// result follows the order in which commands first appear.
func Deltas(records []RunRecord) []Delta {
	var order []string
	pairs := make(map[string][]RunRecord)

	for _, r := range records {
		got, ok := pairs[r.Command]
		if !ok {
			order = append(order, r.Command)
		}
		if len(got) < 2 {
			pairs[r.Command] = append(got, r)
		}
	}

	var deltas []Delta
	for _, command := range order {
		pair := pairs[command]
		if len(pair) < 2 {
			continue
		}
		latest, previous := pair[0], pair[1]
		deltas = append(deltas, Delta{
			Command:   command,
			Latest:    latest,
			Previous:  previous,
			Change:    latest.Count - previous.Count,
			Unchanged: latest.Digest != "" && latest.Digest == previous.Digest,
		})
	}
	return deltas
}
