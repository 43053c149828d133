/*
 * MIT License
 *
 * Copyright (c) 2024-2026 StellarForge
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package persistence

import "time"

// Config tunes the analytics archiver.
type Config struct {
	// Directory is where archive files are written.
	Directory string
	// MaxArchives bounds how many archives are retained; older ones are
	// removed by filename order. Zero or negative disables the bound.
	MaxArchives int
	// AutoArchive enables the periodic archive job.
	AutoArchive bool
	// ArchiveInterval is the period of the archive job.
	ArchiveInterval time.Duration
	// FinalExport writes one last archive when the archiver stops.
	FinalExport bool
}

// DefaultConfig returns the archiver defaults.
func DefaultConfig() Config {
	return Config{
		Directory:       "lifecycle_archives",
		MaxArchives:     10,
		AutoArchive:     false,
		ArchiveInterval: 5 * time.Minute,
		FinalExport:     true,
	}
}
