// Package registry maps executable names to donation-eligible projects.
//
// The bundled project database ships inside the binary; user config can
// layer extra executable mappings on top of it.
package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fragmede/fundcli/schema"
)

//go:embed data/projects.yaml
var bundledProjects []byte

// Registry holds project records and the executable index.
// It implements contract.Registry.
type Registry struct {
	projects map[string]*schema.Project
	exeIndex map[string]string // executable name -> project id
}

// NewBundled loads the project database shipped with the binary.
func NewBundled() (*Registry, error) {
	return Load(bundledProjects)
}

// Load parses YAML project data keyed by project id.
func Load(data []byte) (*Registry, error) {
	var raw map[string]*schema.Project
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project data: %w", err)
	}

	r := &Registry{
		projects: make(map[string]*schema.Project, len(raw)),
		exeIndex: make(map[string]string),
	}
	for id, project := range raw {
		project.ID = id
		if project.Name == "" {
			project.Name = id
		}
		if len(project.Executables) == 0 {
			project.Executables = []string{id}
		}
		r.projects[id] = project
		for _, exe := range project.Executables {
			r.exeIndex[exe] = id
		}
	}
	return r, nil
}

// ProjectFor resolves an executable name to its project, if known.
func (r *Registry) ProjectFor(exe string) (*schema.Project, bool) {
	id, ok := r.exeIndex[exe]
	if !ok {
		return nil, false
	}
	project, ok := r.projects[id]
	return project, ok
}

// Project returns a project by its identifier.
func (r *Registry) Project(id string) (*schema.Project, bool) {
	project, ok := r.projects[id]
	return project, ok
}

// AllProjects returns every known project, ordered by id.
func (r *Registry) AllProjects() []*schema.Project {
	out := make([]*schema.Project, 0, len(r.projects))
	for _, project := range r.projects {
		out = append(out, project)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search matches projects by name, description, id or executable,
// case-insensitively. Results are ordered by id.
func (r *Registry) Search(query string) []*schema.Project {
	query = strings.ToLower(query)
	var results []*schema.Project

	for _, project := range r.projects {
		if strings.Contains(strings.ToLower(project.Name), query) ||
			strings.Contains(strings.ToLower(project.Description), query) ||
			strings.Contains(strings.ToLower(project.ID), query) {
			results = append(results, project)
			continue
		}
		for _, exe := range project.Executables {
			if strings.Contains(strings.ToLower(exe), query) {
				results = append(results, project)
				break
			}
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// AddMapping registers an extra executable -> project mapping. Unknown
// project ids are ignored so a stale config entry cannot break runs.
func (r *Registry) AddMapping(exe, projectID string) {
	if _, ok := r.projects[projectID]; !ok {
		return
	}
	r.exeIndex[exe] = projectID
}
