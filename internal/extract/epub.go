// This file reads Dublin Core metadata out of an EPUB container: the
// OCF container.xml points at the OPF package document, whose metadata
// block carries dc:title, dc:creator, dc:date and dcterms:modified.

package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"

	"github.com/tmalloy/bindery/internal/models"
)

const containerPath = "META-INF/container.xml"

// ocfContainer mirrors the part of META-INF/container.xml we need. Tags
// match by local name, so the OCF namespace does not matter.
type ocfContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type opfPackage struct {
	Metadata struct {
		Titles   []string  `xml:"title"`
		Creators []string  `xml:"creator"`
		Dates    []string  `xml:"date"`
		Metas    []opfMeta `xml:"meta"`
	} `xml:"metadata"`
}

type opfMeta struct {
	Property string `xml:"property,attr"`
	Value    string `xml:",chardata"`
}

// EPUB parses the book's OPF package document and returns its Dublin
// Core fields. Only the first title, creator and date entries are used.
func EPUB(path string) (models.BookMeta, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return models.BookMeta{}, fmt.Errorf("failed to open epub: %w", err)
	}
	defer zr.Close()

	opfPath, err := findOPFPath(&zr.Reader)
	if err != nil {
		return models.BookMeta{}, err
	}

	var pkg opfPackage
	if err := decodeZipXML(&zr.Reader, opfPath, &pkg); err != nil {
		return models.BookMeta{}, fmt.Errorf("failed to parse OPF %s: %w", opfPath, err)
	}

	meta := models.BookMeta{}
	if len(pkg.Metadata.Titles) > 0 {
		meta.Title = optional(pkg.Metadata.Titles[0])
	}
	if len(pkg.Metadata.Creators) > 0 {
		meta.Authors = optional(pkg.Metadata.Creators[0])
	}
	if len(pkg.Metadata.Dates) > 0 {
		meta.Date = optional(pkg.Metadata.Dates[0])
	}
	for _, m := range pkg.Metadata.Metas {
		if m.Property == "dcterms:modified" {
			meta.Modified = optional(m.Value)
			break
		}
	}
	return meta, nil
}

// findOPFPath resolves the rootfile path declared in container.xml.
func findOPFPath(zr *zip.Reader) (string, error) {
	var container ocfContainer
	if err := decodeZipXML(zr, containerPath, &container); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", containerPath, err)
	}
	for _, rf := range container.Rootfiles {
		if rf.FullPath != "" {
			return rf.FullPath, nil
		}
	}
	return "", fmt.Errorf("no rootfile declared in %s", containerPath)
}

func decodeZipXML(zr *zip.Reader, name string, v interface{}) error {
	f, err := zr.Open(name)
	if err != nil {
		return fmt.Errorf("missing archive member %s: %w", name, err)
	}
	defer f.Close()
	return xml.NewDecoder(f).Decode(v)
}
