/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package iconfig loads the forensic decoder's run-time configuration from
// an INI-style file (teacher pattern: gravwell's config package, built on
// github.com/gravwell/gcfg) with environment-variable overrides.
package iconfig

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/gravwell/gcfg"
)

const (
	kb = 1024

	defaultLogLevel      = `ERROR`
	defaultMD5ChunkBytes = 64 * kb
	maxConfigSize        = 4 * 1024 * 1024
)

const (
	envLogLevel = `ICQFORENSIC_LOG_LEVEL`
	envVerbose  = `ICQFORENSIC_VERBOSE`
)

var (
	ErrConfigFileTooLarge = errors.New("configuration file is too large")
	ErrFailedFileRead     = errors.New("failed to read entire configuration file")
)

// DecodeConfig governs the ambient behavior of a single decode+correlate
// run: the verbose switch passed to the binary decoders (spec §4.2's
// "verbose mode"), the content-cache directory name, and logging.
// MD5_Chunk_Bytes is parsed but not read anywhere: internal/cachescan
// always hashes in fixed 64 KiB chunks.
type DecodeConfig struct {
	Global struct {
		Verbose            bool
		Log_Level          string
		Log_File           string
		MD5_Chunk_Bytes    int64
		Content_Cache_Name string
	}
}

func defaultConfig() *DecodeConfig {
	c := &DecodeConfig{}
	c.Global.Log_Level = defaultLogLevel
	c.Global.MD5_Chunk_Bytes = defaultMD5ChunkBytes
	c.Global.Content_Cache_Name = "content.cache"
	return c
}

// LoadConfigFile reads and parses an INI config file, falling back to
// defaults for anything unset and then applying environment overrides.
func LoadConfigFile(p string) (*DecodeConfig, error) {
	fin, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	fi, err := fin.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() > maxConfigSize {
		return nil, ErrConfigFileTooLarge
	}
	b := make([]byte, fi.Size())
	if n, err := io.ReadFull(fin, b); err != nil || int64(n) != fi.Size() {
		return nil, ErrFailedFileRead
	}
	return LoadConfigBytes(b)
}

// LoadConfigBytes parses config bytes already in memory.
func LoadConfigBytes(b []byte) (*DecodeConfig, error) {
	c := defaultConfig()
	if len(bytes.TrimSpace(b)) > 0 {
		if err := gcfg.ReadStringInto(c, string(b)); err != nil {
			return nil, err
		}
	}
	loadEnvOverrides(c)
	return c, nil
}

// Default returns the baseline configuration with only environment
// overrides applied — used when no config file is supplied.
func Default() *DecodeConfig {
	c := defaultConfig()
	loadEnvOverrides(c)
	return c
}

func loadEnvOverrides(c *DecodeConfig) {
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		c.Global.Log_Level = v
	}
	if v, ok := os.LookupEnv(envVerbose); ok {
		c.Global.Verbose = v == "1" || v == "true" || v == "TRUE"
	}
}
