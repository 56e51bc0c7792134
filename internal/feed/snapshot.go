package feed

import (
	"path/filepath"

	"github.com/ralt/pluginstats/internal/utils"
	"github.com/sirupsen/logrus"
)

// SnapshotsDir is the directory, under the data directory, holding
// compressed copies of downloaded feeds
const SnapshotsDir = "snapshots"

// SnapshotPath returns where a feed downloaded at stamp is archived
func (c *Cache) SnapshotPath(name, stamp string) string {
	file := name + ".json" + utils.CompressionExt(c.opts.Archive)
	return filepath.Join(c.opts.DataDir, SnapshotsDir, stamp, file)
}

// archive writes a compressed copy of a freshly downloaded feed next to a
// sha256sum-style sidecar
func (c *Cache) archive(name string, data []byte, stamp string) error {
	packed, err := utils.Compress(data, c.opts.Archive)
	if err != nil {
		return err
	}

	path := c.SnapshotPath(name, stamp)
	if err := utils.WriteFile(path, packed, 0644); err != nil {
		return err
	}

	sum := utils.ChecksumLine(utils.SHA256Hex(packed), filepath.Base(path))
	if err := utils.WriteFile(path+".sha256", []byte(sum), 0644); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"feed":   name,
		"path":   path,
		"format": c.opts.Archive,
	}).Info("Archived feed snapshot")
	return nil
}
