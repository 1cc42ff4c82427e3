package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/srcscan/internal/lang"
)

func TestExtractImports_Rust(t *testing.T) {
	src := `use serde::Serialize;
use crate::config::Config;
use self::inner;
use std::fmt;
use tokio;
use anyhow::{Context, Result};
mod parser;
mod tests {
}
// use commented::out;
fn main() {}
`
	got := ExtractImports(lang.Rust, src)
	assert.Equal(t, []string{"serde", "tokio", "anyhow", "parser"}, got)
}

func TestExtractImports_JavaScript(t *testing.T) {
	src := `import React from "react";
import { helper } from './util/helper';
import "./side-effect.css";
import x from '@scope/pkg';
const fs = require('fs');
const local = require("./local");
const scoped = require('@babel/core');
// const old = require('legacy');
`
	got := ExtractImports(lang.JavaScript, src)
	assert.Equal(t, []string{"react", "./util/helper", "fs", "./local", "legacy"}, got)
	assert.Equal(t, got, ExtractImports(lang.TypeScript, src))
}

func TestExtractImports_Python(t *testing.T) {
	src := `import os
import sys, json
import  spaced
from collections import OrderedDict
from . import sibling
from .. import parent
from .pkg import thing
# import commented
`
	got := ExtractImports(lang.Python, src)
	assert.Equal(t, []string{"os", "sys", "collections", ".pkg"}, got)
}

func TestExtractImports_UnsupportedLanguage(t *testing.T) {
	assert.Nil(t, ExtractImports(lang.Go, "import \"fmt\"\n"))
	assert.False(t, SupportsImports(lang.Markdown))
	assert.True(t, SupportsImports(lang.TypeScript))
}

func TestResolveImport(t *testing.T) {
	importer := filepath.Join("proj", "src", "main.rs")

	assert.Equal(t, "std", ResolveImport(importer, "std"))
	assert.Equal(t, "crate::util", ResolveImport(importer, "crate::util"))
	assert.Equal(t, "serde::std::io", ResolveImport(importer, "serde::std::io"))
	assert.Equal(t, filepath.Join("proj", "src", "parser"), ResolveImport(importer, "parser"))
}

func TestBuildDependencyGraph_RustModScenario(t *testing.T) {
	dir := filepath.Join("project")
	a := filepath.Join(dir, "a.rs")
	b := filepath.Join(dir, "b.rs")

	g := BuildDependencyGraph([]SourceFile{
		{Path: a, Language: lang.Rust, Content: "mod b;\n"},
		{Path: b, Language: lang.Rust, Content: ""},
	})

	require.Equal(t, 2, g.NodeCount(), "a.rs and the resolved mod target")
	assert.False(t, g.HasNode(b), "a file without imports is not a node")
	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, [2]string{a, filepath.Join(dir, "b")}, edges[0])
}

func TestBuildDependencyGraph_SkipsTestFiles(t *testing.T) {
	g := BuildDependencyGraph([]SourceFile{
		{Path: "src/lib_test.py", Language: lang.Python, Content: "import lib\n"},
		{Path: "src/lib.py", Language: lang.Python, Content: "import os\n"},
	})

	assert.False(t, g.HasNode("src/lib_test.py"))
	assert.True(t, g.HasNode("src/lib.py"))
	assert.Equal(t, []string{filepath.Join("src", "os")}, g.Dependencies("src/lib.py"))
}
