package network

import (
	"encoding/json"
	"io"
)

type jsonNode struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	Affiliation string `json:"affiliation"`
	Papers      int    `json:"papers"`
}

type jsonEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

type jsonNetwork struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
	Stats jsonStats  `json:"stats"`
}

type jsonStats struct {
	Entries  int `json:"entries"`
	Skipped  int `json:"skipped"`
	Resolved int `json:"resolved"`
}

// WriteJSON writes the network as nodes and weighted edges.
func WriteJSON(net *Network, w io.Writer) error {
	out := jsonNetwork{
		Nodes: make([]jsonNode, net.Size()),
		Edges: []jsonEdge{},
		Stats: jsonStats{Entries: net.Stats.Entries, Skipped: net.Stats.Skipped, Resolved: net.Stats.Resolved},
	}
	last := net.Roster.LastNames()
	for i, name := range net.Roster.Names {
		out.Nodes[i] = jsonNode{
			ID:          i,
			Name:        name,
			LastName:    last[i],
			Affiliation: net.Roster.Affiliations[i],
			Papers:      net.Papers[i],
		}
	}
	for _, e := range net.Edges() {
		out.Edges = append(out.Edges, jsonEdge{Source: e.I, Target: e.J, Weight: e.Weight})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
