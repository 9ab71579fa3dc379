package sources

import (
	"fmt"
	"path"
	"strings"
)

// Coordinate is a maven coordinate group:artifact:version[:classifier][@ext].
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

func ParseCoordinate(name string) (Coordinate, error) {
	c := Coordinate{Extension: "jar"}
	if at := strings.LastIndex(name, "@"); at >= 0 {
		c.Extension = name[at+1:]
		name = name[:at]
	}
	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("invalid library coordinate %q", name)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("invalid library coordinate %q", name)
		}
	}
	c.Group, c.Artifact, c.Version = parts[0], parts[1], parts[2]
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// WithClassifier returns a copy of the coordinate with another classifier.
func (c Coordinate) WithClassifier(classifier string) Coordinate {
	c.Classifier = classifier
	return c
}

func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	if c.Extension != "jar" {
		s += "@" + c.Extension
	}
	return s
}

// Path is the repository layout path, e.g.
// com/google/guava/guava/21.0/guava-21.0.jar.
func (c Coordinate) Path() string {
	file := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		file += "-" + c.Classifier
	}
	file += "." + c.Extension
	return path.Join(strings.ReplaceAll(c.Group, ".", "/"), c.Artifact, c.Version, file)
}

// URL joins the layout path onto a repository base URL.
func (c Coordinate) URL(repository string) string {
	return strings.TrimSuffix(repository, "/") + "/" + c.Path()
}
