package utils

import "time"

// SlotLockPrefix is the prefix used for Redis slot lock keys.
const SlotLockPrefix = "slotlock:"

// SlotLockTTL bounds how long a crashed request can hold a slot lock.
const SlotLockTTL = 10 * time.Second
