// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven ports
// (adapters).
//
// The deserializer engine lives here too: SchemaIndex resolves
// meta-pointers and flattens features, ValueCodec decodes property values,
// and Deserializer rebuilds node graphs through a driven.NodeFactory.
//
// Services are pure Go with no CGO dependencies.
package services
