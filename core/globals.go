package core

import "github.com/huangsam/attrition/internal/outwriter"

// writer renders every executor result in the configured output format.
var writer = outwriter.NewOutWriter()
