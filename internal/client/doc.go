// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application.
//
// It wires the server adapter and local token storage into a single
// command dispatcher: one invocation performs one vault operation.
package client
