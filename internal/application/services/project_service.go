package services

import (
	"context"
	"fmt"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/project"
)

// AttachResult reports what Attach did
type AttachResult struct {
	AlreadyAttached bool
	MarkerPath      string
}

// ProjectService makes existing directories usable by the plugin commands
type ProjectService struct {
	projects ports.ProjectRepository
	logger   ports.LoggingGateway
	version  string
}

// NewProjectService creates a new project service
func NewProjectService(projects ports.ProjectRepository, logger ports.LoggingGateway, version string) *ProjectService {
	return &ProjectService{
		projects: projects,
		logger:   logger,
		version:  version,
	}
}

// Attach writes the marker file into root unless one is already present
func (s *ProjectService) Attach(ctx context.Context, root string) (*AttachResult, error) {
	result := &AttachResult{MarkerPath: project.MarkerPath(root)}
	if project.IsProjectDirectory(root) {
		result.AlreadyAttached = true
		return result, nil
	}

	if err := s.projects.Create(root, project.NewConfig(s.version)); err != nil {
		s.logger.LogError(err, "Failed to attach project", map[string]interface{}{"root": root})
		return nil, fmt.Errorf("failed to attach project: %w", err)
	}

	s.logger.Log(ports.LogLevelInfo, "Project attached", map[string]interface{}{
		"marker_path": result.MarkerPath,
	})
	return result, nil
}
