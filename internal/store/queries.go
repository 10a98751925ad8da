package store

const (
	SaveCatQuery = `
		MERGE (c:Cat {uuid: $uuid})
		SET c.name = $name,
			c.description = $description,
			c.lat = $lat,
			c.lng = $lng,
			c.photo_url = $photo_url,
			c.embedding = $embedding,
			c.neutered = $neutered,
			c.neutered_at = $neutered_at,
			c.summary = $summary,
			c.created_at = $created_at
		RETURN c.uuid AS uuid
	`

	GetCatQuery = `
		MATCH (c:Cat {uuid: $uuid})
		OPTIONAL MATCH (c)-[:HAS_FEEDING]->(f:Feeding)
		RETURN c.uuid AS uuid, c.name AS name, c.description AS description,
			c.lat AS lat, c.lng AS lng, c.photo_url AS photo_url,
			c.embedding AS embedding, c.neutered AS neutered,
			c.neutered_at AS neutered_at, c.summary AS summary,
			c.created_at AS created_at,
			collect(f {.uuid, .feeder_name, .food, .fed_at}) AS feedings
	`

	CatsInRangeQuery = `
		MATCH (c:Cat)
		WHERE abs(c.lat - $lat) < $lat_range AND abs(c.lng - $lng) < $lng_range
		RETURN c.uuid AS uuid, c.name AS name, c.description AS description,
			c.lat AS lat, c.lng AS lng, c.photo_url AS photo_url,
			c.embedding AS embedding, c.neutered AS neutered,
			c.neutered_at AS neutered_at, c.summary AS summary,
			c.created_at AS created_at
	`

	AllCatsQuery = `
		MATCH (c:Cat)
		RETURN c.uuid AS uuid, c.name AS name, c.description AS description,
			c.lat AS lat, c.lng AS lng, c.photo_url AS photo_url,
			c.embedding AS embedding, c.neutered AS neutered,
			c.neutered_at AS neutered_at, c.summary AS summary,
			c.created_at AS created_at
	`

	DeleteCatQuery = `
		MATCH (c:Cat {uuid: $uuid})
		OPTIONAL MATCH (c)-[:HAS_FEEDING]->(f:Feeding)
		DETACH DELETE c, f
	`

	AddFeedingQuery = `
		MATCH (c:Cat {uuid: $cat_uuid})
		CREATE (f:Feeding {uuid: $uuid, feeder_name: $feeder_name, food: $food, fed_at: $fed_at})
		CREATE (c)-[:HAS_FEEDING]->(f)
		RETURN f.uuid AS uuid
	`

	SetNeuteredQuery = `
		MATCH (c:Cat {uuid: $uuid})
		SET c.neutered = $neutered, c.neutered_at = $neutered_at
		RETURN c.uuid AS uuid
	`

	SetSummaryQuery = `
		MATCH (c:Cat {uuid: $uuid})
		SET c.summary = $summary
		RETURN c.uuid AS uuid
	`

	SaveHospitalQuery = `
		MERGE (h:Hospital {uuid: $uuid})
		SET h.name = $name,
			h.address = $address,
			h.phone = $phone,
			h.lat = $lat,
			h.lng = $lng
		RETURN h.uuid AS uuid
	`

	HospitalsInRangeQuery = `
		MATCH (h:Hospital)
		WHERE abs(h.lat - $lat) < $lat_range AND abs(h.lng - $lng) < $lng_range
		RETURN h.uuid AS uuid, h.name AS name, h.address AS address,
			h.phone AS phone, h.lat AS lat, h.lng AS lng
	`
)
