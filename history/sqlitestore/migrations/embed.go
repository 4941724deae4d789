// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrations

import "embed"

// FS contains the embedded SQLite migrations of the history store.
//
//go:embed *.sql
var FS embed.FS
