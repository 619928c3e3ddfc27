// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"os"

	"github.com/AleutianAI/commitgate/pkg/ux"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Gate failures already printed their report; only surface
		// unexpected errors here.
		var silenced bool
		if cmdErr, ok := err.(*CommandError); ok {
			silenced = cmdErr.Wrapped == nil
		}
		if !silenced {
			ux.Error(err.Error())
		}
		os.Exit(ExitCodeOf(err))
	}
}
