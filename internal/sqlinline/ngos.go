package sqlinline

const QEnsureNGOSchema = `--sql 4c1f7a2e-8d3b-4f6a-9e21-b7c05d9a13f4
create table if not exists ngos (
  id text primary key,
  name text not null,
  description text not null default '',
  category text not null default '',
  address text not null default '',
  city text not null default '',
  website text not null default '',
  accepted_donations text[] not null default '{}',
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);
`

const QUpsertNGO = `--sql 0e9b6d54-2a71-4c8f-b3d6-5f1e8a2c7b90
insert into ngos(id, name, description, category, address, city, website, accepted_donations, created_at, updated_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, $8::text[], now(), now())
on conflict (id) do update set
  name = excluded.name,
  description = excluded.description,
  category = excluded.category,
  address = excluded.address,
  city = excluded.city,
  website = excluded.website,
  accepted_donations = excluded.accepted_donations,
  updated_at = now();
`

const QSelectNGOByID = `--sql 7d3e2b18-65c4-4a09-8f7e-c1d2a3b4e5f6
select id, name, description, category, address, city, website, accepted_donations
from ngos
where id = $1::text;
`

const QListNGOs = `--sql b2a8f4c6-1d3e-4b5a-9c7d-e8f0a1b2c3d4
select id, name, description, category, address, city, website, accepted_donations
from ngos
order by name asc, id asc;
`

const QCountNGOs = `--sql 5f6a7b8c-9d0e-4f1a-8b2c-3d4e5f6a7b8c
select count(*) from ngos;
`
