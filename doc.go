/*
Package refidx builds and queries an on-disk occurrence index over a
single reference sequence. The index is a suffix array, optionally
paired with a dense k-prefix lookup table, built once and then loaded
read-only by any number of query runs.

Data Structure Documentation

Index file

An index file is a fixed header followed by a payload which is either
raw or snappy-encoded as a single block.

    File layout:
    +-----------+-------------+-----------+---------+
    | magic (8) | version (1) | codec (1) | payload |
    +-----------+-------------+-----------+---------+

Payload

All multi-byte integers are little-endian. SA entries and prefix-table
bounds use w bytes each, where w is 4 if n fits into 32 bits and 8
otherwise; w is derived from n alone.

    Payload layout:
    +------------+--------------+-----------+------------------------+
    | n (8)      | sentinel (1) | sigma (1) | symbols (sigma bytes)  |
    +------------+--------------+-----------+------------------------+
    | sequence (n bytes, sentinel-terminated)                        |
    +----------------------------------------------------------------+
    | suffix array (n * w bytes)                                     |
    +----------------------------------------------------------------+
    | preftab flag (1)                                               |
    +----------------------------------------------------------------+
    | k (2) | spans (sigma^k * 2 * w bytes)      -- iff flag is 1    |
    +----------------------------------------------------------------+

Symbols are listed in code order; symbol i carries code i+1, the
sentinel carries code 0 and therefore sorts below every real symbol.

The prefix table stores, for every possible string of k real symbols
in lexicographic order, the half-open suffix-array interval of the
suffixes starting with that string. Absent keys store an empty
interval positioned at their insertion point.
*/
package refidx
