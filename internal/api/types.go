// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package api

// bulkRequest is the POST body of /query, /nearest and /nearest_all.
// A null entry in Geoms is a missing geometry.
type bulkRequest struct {
	Geoms       []*string `json:"geoms"`
	Predicate   string    `json:"predicate,omitempty"`
	Distance    []float64 `json:"distance,omitempty"`
	MaxDistance *float64  `json:"max_distance,omitempty"`
}

type treeResult struct {
	Tree []int `json:"tree"`
}

type nearestResult struct {
	Tree *int `json:"tree"`
}

type nearestBulkResult struct {
	Tree []int `json:"tree"`
}

type pairsResult struct {
	Query    []int     `json:"query"`
	Tree     []int     `json:"tree"`
	Distance []float64 `json:"distance,omitempty"`
}

type statsResult struct {
	Count        int         `json:"count"`
	NodeCapacity int         `json:"node_capacity"`
	Height       int         `json:"height"`
	Bounds       *[4]float64 `json:"bounds"`
}

type errorResult struct {
	Error string `json:"error"`
}
