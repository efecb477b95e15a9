package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// LocalStorage is a parsed LOCAL_STORAGE_URL.
type LocalStorage struct {
	Kind string // memory, fs or s3

	Dir string

	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string
	PathStyle    bool
	CreateBucket bool
}

// ParseLocalStorageURL accepts memory://, file://<dir> and
// s3://<bucket>[/<prefix>]?region=&endpoint=&path_style=&create_bucket=
func ParseLocalStorageURL(raw string) (LocalStorage, error) {
	switch {
	case raw == "" || raw == "memory" || raw == "memory://":
		return LocalStorage{Kind: "memory"}, nil

	case strings.HasPrefix(raw, "file://"):
		dir := strings.TrimPrefix(raw, "file://")
		if dir == "" {
			return LocalStorage{}, fmt.Errorf("local storage url %q has no directory", raw)
		}
		return LocalStorage{Kind: "fs", Dir: dir}, nil

	case strings.HasPrefix(raw, "s3://"):
		u, err := url.Parse(raw)
		if err != nil {
			return LocalStorage{}, fmt.Errorf("invalid local storage url %q: %w", raw, err)
		}
		if u.Host == "" {
			return LocalStorage{}, fmt.Errorf("local storage url %q has no bucket", raw)
		}
		q := u.Query()
		ls := LocalStorage{
			Kind:     "s3",
			Bucket:   u.Host,
			Prefix:   strings.Trim(u.Path, "/"),
			Region:   q.Get("region"),
			Endpoint: q.Get("endpoint"),
		}
		if ls.PathStyle, err = parseBoolParam(q, "path_style"); err != nil {
			return LocalStorage{}, err
		}
		if ls.CreateBucket, err = parseBoolParam(q, "create_bucket"); err != nil {
			return LocalStorage{}, err
		}
		return ls, nil

	default:
		return LocalStorage{}, fmt.Errorf("unsupported LOCAL_STORAGE_URL: %s (use memory://, file:// or s3://)", raw)
	}
}

func parseBoolParam(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", name, v)
	}
	return b, nil
}
