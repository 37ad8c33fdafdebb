// Package ranking predicts job roles from detected skills and computes applicant tracking scores.
package ranking

import "sort"

// RoleTable maps a role label to the canonical skills considered characteristic of it.
type RoleTable map[string][]string

// DefaultRoles returns the built-in role definitions.
func DefaultRoles() RoleTable {
	return RoleTable{
		"backend":        {"python", "java", "node", "sql", "docker", "aws"},
		"frontend":       {"javascript", "react", "html", "css", "typescript"},
		"data_scientist": {"python", "tensorflow", "pytorch", "nlp", "sql"},
		"devops":         {"aws", "docker", "kubernetes", "linux"},
	}
}

// RoleMatch is a predicted role and how many of its skills were found.
type RoleMatch struct {
	Role    string `json:"role"`
	Overlap int    `json:"overlap"`
}

// RolePredictor ranks roles by skill overlap. It is immutable and safe for concurrent use.
type RolePredictor struct {
	roles []roleDefinition // sorted by label
}

type roleDefinition struct {
	label  string
	skills map[string]struct{}
}

// NewRolePredictor builds a predictor from table. The table is copied.
func NewRolePredictor(table RoleTable) *RolePredictor {
	labels := make([]string, 0, len(table))
	for label := range table {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	p := &RolePredictor{roles: make([]roleDefinition, 0, len(labels))}
	for _, label := range labels {
		set := make(map[string]struct{}, len(table[label]))
		for _, s := range table[label] {
			set[s] = struct{}{}
		}
		p.roles = append(p.roles, roleDefinition{label: label, skills: set})
	}
	return p
}

// Rank returns every role sharing at least one skill with skills, ordered by overlap
// descending. Equal overlaps are ordered by role label.
func (p *RolePredictor) Rank(skills []string) []RoleMatch {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}

	matches := make([]RoleMatch, 0, len(p.roles))
	for _, role := range p.roles {
		overlap := 0
		for s := range role.skills {
			if _, ok := have[s]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			matches = append(matches, RoleMatch{Role: role.label, Overlap: overlap})
		}
	}

	// roles are already in label order, so a stable sort keeps that as the tie-break
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Overlap > matches[j].Overlap
	})
	return matches
}

// Predict returns the ranked role labels for skills.
func (p *RolePredictor) Predict(skills []string) []string {
	matches := p.Rank(skills)
	roles := make([]string, len(matches))
	for i, m := range matches {
		roles[i] = m.Role
	}
	return roles
}
