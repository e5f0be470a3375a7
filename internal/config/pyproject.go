package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type projectMetadataSource struct {
	fileName   string
	fileType   string
	nameFields []string
}

var projectMetadataSources = []projectMetadataSource{
	{fileName: "pyproject.toml", fileType: "toml", nameFields: []string{"project.name", "tool.poetry.name"}},
	{fileName: "setup.cfg", fileType: "ini", nameFields: []string{"metadata.name"}},
}

// DetectProjectName returns the distribution name declared by the Python
// packaging metadata in directory, or an empty string when none is declared.
func DetectProjectName(directory string) (string, error) {
	for _, source := range projectMetadataSources {
		metadataPath := filepath.Join(directory, source.fileName)
		if _, statError := os.Stat(metadataPath); statError != nil {
			if os.IsNotExist(statError) {
				continue
			}
			return "", fmt.Errorf("inspect %s: %w", metadataPath, statError)
		}
		reader := viper.New()
		reader.SetConfigFile(metadataPath)
		reader.SetConfigType(source.fileType)
		if readError := reader.ReadInConfig(); readError != nil {
			return "", fmt.Errorf("read project metadata %s: %w", metadataPath, readError)
		}
		for _, field := range source.nameFields {
			if name := strings.TrimSpace(reader.GetString(field)); name != "" {
				return name, nil
			}
		}
	}
	return "", nil
}
