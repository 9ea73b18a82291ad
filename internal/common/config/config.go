package config

import (
	"bufio"
	"io/fs"
	"os"
	"strings"
)

type DB struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"database"`
}

// Enabled reports whether a Postgres pickup sink was configured at all.
func (d DB) Enabled() bool { return d.Host != "" }

type MQ struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
}

func (m MQ) Enabled() bool { return m.Host != "" }

type Pickup struct {
	Directory string `yaml:"directory"`
}

type App struct {
	Database DB     `yaml:"database"`
	Rabbit   MQ     `yaml:"rabbitmq"`
	Pickup   Pickup `yaml:"pickup"`
}

// Default runs the register standalone: pickup files in the working
// directory, no Postgres, no broker.
func Default() App {
	return App{Pickup: Pickup{Directory: "."}}
}

// Load parses a two-level YAML file without an external package; every
// section is optional.
func Load(path string) (App, error) {
	f, err := os.Open(path)
	if err != nil {
		return App{}, err
	}
	defer f.Close()

	a := Default()
	var cur string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			cur = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		switch cur {
		case "database":
			assignDB(&a.Database, k, v)
		case "rabbitmq":
			assignMQ(&a.Rabbit, k, v)
		case "pickup":
			if k == "directory" {
				a.Pickup.Directory = v
			}
		}
	}
	if err := sc.Err(); err != nil {
		return App{}, err
	}
	return a, nil
}

func assignDB(d *DB, k, v string) {
	switch k {
	case "host":
		d.Host = v
	case "port":
		d.Port = atoiSafe(v)
	case "user":
		d.User = v
	case "password":
		d.Pass = v
	case "database":
		d.Name = v
	}
}

func assignMQ(m *MQ, k, v string) {
	switch k {
	case "host":
		m.Host = v
	case "port":
		m.Port = atoiSafe(v)
	case "user":
		m.User = v
	case "password":
		m.Pass = v
	}
}

func atoiSafe(s string) int {
	var n int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
