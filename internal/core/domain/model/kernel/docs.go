// Package kernel provides core domain primitives shared by every order aggregate
// of the factory.
//
// The package includes:
//   - ID: the opaque numeric identity of orders, items and workstations
//   - ItemType and Item: a typed quantity of a product, module or part
//   - Progress: a read-only completion snapshot over a set of child orders
//   - OrderNumber: the prefix plus zero-padded sequence format used for order numbers
//
// Aggregates never hold pointers to their parents, only parent IDs; lookups across
// the hierarchy always go through the order store.
package kernel
